package applicanthistory

import (
	"smarthire-backend/models"
	dbmodels "smarthire-backend/models/db"

	"github.com/mohae/deepcopy"
)

// Field describes one editable candidate attribute. Path is the dotted label
// used in audit texts and whitelists.
type Field struct {
	Path string
	Get  func(c dbmodels.Candidate) interface{}
	set  func(dst *dbmodels.Candidate, src dbmodels.Candidate)
}

// CopyTo copies the field value from src to dst when they differ.
func (f Field) CopyTo(dst *dbmodels.Candidate, src dbmodels.Candidate) {
	if equalValues(f.Get(*dst), f.Get(src)) {
		return
	}
	f.set(dst, src)
}

func stringField(path string, ref func(c *dbmodels.Candidate) *string) Field {
	return Field{
		Path: path,
		Get:  func(c dbmodels.Candidate) interface{} { return *ref(&c) },
		set:  func(dst *dbmodels.Candidate, src dbmodels.Candidate) { *ref(dst) = *ref(&src) },
	}
}

func intField(path string, ref func(c *dbmodels.Candidate) *int) Field {
	return Field{
		Path: path,
		Get:  func(c dbmodels.Candidate) interface{} { return *ref(&c) },
		set:  func(dst *dbmodels.Candidate, src dbmodels.Candidate) { *ref(dst) = *ref(&src) },
	}
}

func floatField(path string, ref func(c *dbmodels.Candidate) *float64) Field {
	return Field{
		Path: path,
		Get:  func(c dbmodels.Candidate) interface{} { return *ref(&c) },
		set:  func(dst *dbmodels.Candidate, src dbmodels.Candidate) { *ref(dst) = *ref(&src) },
	}
}

func boolField(path string, ref func(c *dbmodels.Candidate) *bool) Field {
	return Field{
		Path: path,
		Get:  func(c dbmodels.Candidate) interface{} { return *ref(&c) },
		set:  func(dst *dbmodels.Candidate, src dbmodels.Candidate) { *ref(dst) = *ref(&src) },
	}
}

func listField[T any](path string, ref func(c *dbmodels.Candidate) *[]T) Field {
	return Field{
		Path: path,
		Get:  func(c dbmodels.Candidate) interface{} { return *ref(&c) },
		set: func(dst *dbmodels.Candidate, src dbmodels.Candidate) {
			*ref(dst) = deepcopy.Copy(*ref(&src)).([]T)
		},
	}
}

// offerField reads through a nil offer as empty and creates the offer on write.
func offerField(path string, ref func(o *dbmodels.Offer) *string) Field {
	return Field{
		Path: path,
		Get: func(c dbmodels.Candidate) interface{} {
			if c.Offer == nil {
				return ""
			}
			return *ref(c.Offer)
		},
		set: func(dst *dbmodels.Candidate, src dbmodels.Candidate) {
			value := ""
			if src.Offer != nil {
				value = *ref(src.Offer)
			}
			if dst.Offer == nil {
				dst.Offer = &dbmodels.Offer{}
			} else {
				offer := *dst.Offer
				dst.Offer = &offer
			}
			*ref(dst.Offer) = value
		},
	}
}

var personalFields = []Field{
	stringField("fullName", func(c *dbmodels.Candidate) *string { return &c.FullName }),
	stringField("dob", func(c *dbmodels.Candidate) *string { return &c.Dob }),
	intField("age", func(c *dbmodels.Candidate) *int { return &c.Age }),
	stringField("contact.phone", func(c *dbmodels.Candidate) *string { return &c.Contact.Phone }),
	stringField("contact.email", func(c *dbmodels.Candidate) *string { return &c.Contact.Email }),
	stringField("emergencyContact.name", func(c *dbmodels.Candidate) *string { return &c.EmergencyContact.Name }),
	stringField("emergencyContact.phone", func(c *dbmodels.Candidate) *string { return &c.EmergencyContact.Phone }),
	stringField("address", func(c *dbmodels.Candidate) *string { return &c.Address }),
	stringField("medicalConditions", func(c *dbmodels.Candidate) *string { return &c.MedicalConditions }),
	stringField("religion", func(c *dbmodels.Candidate) *string { return &c.Religion }),
	stringField("maritalStatus", func(c *dbmodels.Candidate) *string { return &c.MaritalStatus }),
}

var jobFields = []Field{
	stringField("vacancy", func(c *dbmodels.Candidate) *string { return &c.Vacancy }),
	stringField("positionOffered", func(c *dbmodels.Candidate) *string { return &c.PositionOffered }),
	stringField("department", func(c *dbmodels.Candidate) *string { return &c.Department }),
	stringField("expectedSalary", func(c *dbmodels.Candidate) *string { return &c.ExpectedSalary }),
	boolField("accommodationRequired", func(c *dbmodels.Candidate) *bool { return &c.AccommodationRequired }),
	boolField("transportRequired", func(c *dbmodels.Candidate) *bool { return &c.TransportRequired }),
}

var qualificationFields = []Field{
	stringField("totalWorkExperience", func(c *dbmodels.Candidate) *string { return &c.TotalWorkExperience }),
	listField("qualifications", func(c *dbmodels.Candidate) *[]dbmodels.Qualification { return &c.Qualifications }),
	listField("workExperience", func(c *dbmodels.Candidate) *[]dbmodels.WorkExperience { return &c.WorkExperience }),
	stringField("languagesKnown", func(c *dbmodels.Candidate) *string { return &c.LanguagesKnown }),
	listField("references", func(c *dbmodels.Candidate) *[]dbmodels.Reference { return &c.References }),
}

var offerFields = []Field{
	offerField("offer.salary", func(o *dbmodels.Offer) *string { return &o.Salary }),
	offerField("offer.joiningDate", func(o *dbmodels.Offer) *string { return &o.JoiningDate }),
	offerField("offer.accommodationDetails", func(o *dbmodels.Offer) *string { return &o.AccommodationDetails }),
	stringField("employeeId", func(c *dbmodels.Candidate) *string { return &c.EmployeeID }),
}

// The composite ratings.hr.score is never listed: it is derived.
var hrRatingFields = []Field{
	stringField("ratings.hr.interviewer", func(c *dbmodels.Candidate) *string { return &c.Ratings.HR.Interviewer }),
	intField("ratings.hr.personality", func(c *dbmodels.Candidate) *int { return &c.Ratings.HR.Personality }),
	intField("ratings.hr.attitude", func(c *dbmodels.Candidate) *int { return &c.Ratings.HR.Attitude }),
	intField("ratings.hr.presentable", func(c *dbmodels.Candidate) *int { return &c.Ratings.HR.Presentable }),
	intField("ratings.hr.communication", func(c *dbmodels.Candidate) *int { return &c.Ratings.HR.Communication }),
	intField("ratings.hr.confidence", func(c *dbmodels.Candidate) *int { return &c.Ratings.HR.Confidence }),
	stringField("ratings.hr.evaluation", func(c *dbmodels.Candidate) *string { return &c.Ratings.HR.Evaluation }),
}

var hodRatingFields = []Field{
	floatField("ratings.manager.score", func(c *dbmodels.Candidate) *float64 { return &c.Ratings.Manager.Score }),
	floatField("ratings.cm.score", func(c *dbmodels.Candidate) *float64 { return &c.Ratings.CM.Score }),
	stringField("ratings.department.interviewer", func(c *dbmodels.Candidate) *string { return &c.Ratings.Department.Interviewer }),
}

// HRRatingPrefix marks the paths of HR rating edits.
const HRRatingPrefix = "ratings.hr."

var whitelists = map[models.UserRole][]Field{
	models.HRRole:  concat(personalFields, qualificationFields, jobFields, offerFields, hrRatingFields),
	models.HODRole: concat(jobFields, hodRatingFields),
}

// FieldsFor returns the fields the role may edit. Roles without a whitelist
// cannot edit candidate fields.
func FieldsFor(role models.UserRole) ([]Field, bool) {
	fields, ok := whitelists[role]
	return fields, ok
}

func concat(groups ...[]Field) []Field {
	result := []Field{}
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}
