package endpoints

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/prebid/prebid-gpp/errortypes"
	"github.com/prebid/prebid-gpp/gpp"
	"github.com/prebid/prebid-gpp/logger"
	"github.com/prebid/prebid-gpp/metrics"
	"github.com/prebid/prebid-gpp/sections"
)

const (
	gppQueryParam    = "gpp"
	gppSIDQueryParam = "gpp_sid"
)

type decodeResponse struct {
	SectionIDs []sections.ID               `json:"section_ids"`
	Sections   map[string]sections.Section `json:"sections"`
	Errors     []decodeError               `json:"errors,omitempty"`
}

type decodeError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Warning bool   `json:"warning,omitempty"`
}

func newDecodeError(err error) decodeError {
	return decodeError{
		Code:    errortypes.ReadCode(err),
		Message: err.Error(),
		Warning: errortypes.IsWarning(err),
	}
}

type decodeEndpoint struct {
	decoder       *gpp.Decoder
	metricsEngine metrics.MetricsEngine
}

// NewDecodeEndpoint decodes the GPP string passed in the gpp query parameter and writes every
// decoded section as JSON, keyed by section name. Sections which failed to decode are listed
// under errors; the request itself only fails when the header cannot be read.
func NewDecodeEndpoint(decoder *gpp.Decoder, metricsEngine metrics.MetricsEngine) httprouter.Handle {
	e := &decodeEndpoint{
		decoder:       decoder,
		metricsEngine: metricsEngine,
	}
	return e.Handle
}

func (e *decodeEndpoint) Handle(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	gppString := r.URL.Query().Get(gppQueryParam)
	if gppString == "" {
		e.writeErrors(w, http.StatusBadRequest, []error{&errortypes.BadInput{Message: "missing " + gppQueryParam + " query parameter"}})
		e.metricsEngine.RecordRequest(metrics.RequestStatusBadInput)
		return
	}

	sids, err := gpp.ParseSIDList(r.URL.Query().Get(gppSIDQueryParam))
	if err != nil {
		e.writeErrors(w, http.StatusBadRequest, []error{err})
		e.metricsEngine.RecordRequest(metrics.RequestStatusBadInput)
		return
	}

	result, err := e.decoder.Decode(gppString, sids...)
	if err != nil {
		e.writeErrors(w, http.StatusBadRequest, []error{err})
		e.metricsEngine.RecordRequest(metrics.RequestStatusBadInput)
		return
	}

	response := decodeResponse{
		SectionIDs: result.SectionIDs,
		Sections:   make(map[string]sections.Section, len(result.Sections)),
	}
	for id, section := range result.Sections {
		response.Sections[id.String()] = section
	}
	for _, err := range result.Failures() {
		response.Errors = append(response.Errors, newDecodeError(err))
	}
	for _, err := range result.Warnings() {
		response.Errors = append(response.Errors, newDecodeError(err))
	}

	body, err := json.Marshal(response)
	if err != nil {
		logger.Errorf("/gpp/decode Critical error when trying to marshal the response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		e.metricsEngine.RecordRequest(metrics.RequestStatusErr)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Write(body)
	e.metricsEngine.RecordRequest(metrics.RequestStatusOK)
}

func (e *decodeEndpoint) writeErrors(w http.ResponseWriter, status int, errs []error) {
	response := struct {
		Errors []decodeError `json:"errors"`
	}{}
	for _, err := range errs {
		response.Errors = append(response.Errors, newDecodeError(err))
	}

	body, err := json.Marshal(response)
	if err != nil {
		logger.Errorf("/gpp/decode Critical error when trying to marshal errors: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
