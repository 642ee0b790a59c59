package analytics

import (
	"bytes"
	"context"
	candidatestore "smarthire-backend/lib/applicant/store"
	xlsexport "smarthire-backend/lib/export/xls"
	initchecker "smarthire-backend/lib/utils/init-checker"
	reportapimodels "smarthire-backend/models/api/report"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Summary(ctx context.Context) (reportapimodels.Summary, error)
	ExportToXls(ctx context.Context) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler(store candidatestore.Provider) {
	instance := impl{
		store:    store,
		exporter: xlsexport.Instance,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"exporter", instance.exporter,
	)
	Instance = instance
}

func NewInstance(store candidatestore.Provider, exporter xlsexport.Provider) Provider {
	return impl{
		store:    store,
		exporter: exporter,
	}
}

type impl struct {
	store    candidatestore.Provider
	exporter xlsexport.Provider
}

func (i impl) Summary(ctx context.Context) (reportapimodels.Summary, error) {
	list, err := i.store.GetAll(ctx)
	if err != nil {
		log.WithError(err).Error("error getting candidates for the report")
		return reportapimodels.Summary{}, errors.Wrap(err, "error getting candidates for the report")
	}
	return Summarize(list), nil
}

func (i impl) ExportToXls(ctx context.Context) (*bytes.Buffer, error) {
	list, err := i.store.GetAll(ctx)
	if err != nil {
		log.WithError(err).Error("error getting candidates for the export")
		return nil, errors.Wrap(err, "error getting candidates for the export")
	}
	return i.exporter.ExportCandidates(list, Summarize(list))
}
