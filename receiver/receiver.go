package receiver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	tslib "github.com/kpaschen/tspaa/lib"
	"github.com/kpaschen/tspaa/lib/datatypes"
	"github.com/kpaschen/tspaa/lib/paa"
	"github.com/kpaschen/tspaa/lib/schema"
	"github.com/kpaschen/tspaa/lib/settings"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/model"
	"github.com/prometheus/prometheus/prompb"
	"github.com/prometheus/prometheus/storage/remote"
	"github.com/rs/zerolog/log"
)

// Request durations are observed in fractional milliseconds, 10µs to ~2.6s.
var durationBuckets = prometheus.ExponentialBuckets(0.01, 4, 10)

var (
	transformedSequences = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "paa_transformed_sequences_total",
			Help: "Total number of sequences reduced.",
		},
	)
	rejectedRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "paa_rejected_requests_total",
			Help: "Total number of requests rejected because of invalid input or settings.",
		},
	)
	receivedSamples = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "paa_received_samples_total",
			Help: "Total number of received remote-write samples.",
		},
	)
	numberOfTimeseries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "paa_number_of_timeseries",
			Help: "number of timeseries held in the window",
		},
	)
	transformDurationHist = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "paa_transform_duration_milliseconds",
			Help:    "Duration of transform requests.",
			Buckets: durationBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(transformedSequences)
	prometheus.MustRegister(rejectedRequests)
	prometheus.MustRegister(receivedSamples)
	prometheus.MustRegister(numberOfTimeseries)
	prometheus.MustRegister(transformDurationHist)
}

// PAAService serves the PAA transform over http and keeps a window of
// remote-write samples.
type PAAService struct {
	transformer *paa.Transformer
	window      *tslib.TimeseriesWindow
}

func NewPAAService(config settings.PAASettings) (*PAAService, error) {
	transformer, err := paa.NewTransformer(config)
	if err != nil {
		return nil, err
	}
	return &PAAService{
		transformer: transformer,
		window:      tslib.NewTimeseriesWindow(transformer.Settings()),
	}, nil
}

func (s *PAAService) Router() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/api/v1/paa", s.TransformSequence).Methods("POST")
	router.HandleFunc("/api/v1/paa/multivariate", s.TransformSeries).Methods("POST")
	router.HandleFunc("/api/v1/paa/layout", s.DescribeLayout).Methods("POST")
	router.HandleFunc("/api/v1/write", s.ReceivePrometheusData).Methods("POST")
	router.HandleFunc("/api/v1/reduced", s.GetReduced).Methods("GET")
	return router
}

// transformerFor honours an optional intervals query parameter.
func (s *PAAService) transformerFor(r *http.Request) (*paa.Transformer, error) {
	param := r.URL.Query().Get("intervals")
	if param == "" {
		return s.transformer, nil
	}
	k, err := strconv.Atoi(param)
	if err != nil || k < 1 {
		return nil, fmt.Errorf("%w: bad intervals parameter %q", paa.ErrInvalidConfiguration, param)
	}
	config := s.transformer.Settings()
	config.NumIntervals = k
	return paa.NewTransformer(config)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, paa.ErrInvalidInput) || errors.Is(err, paa.ErrInvalidConfiguration) {
		status = http.StatusBadRequest
		rejectedRequests.Inc()
	}
	log.Error().Err(err).Int("status", status).Msg("request failed")
	http.Error(w, err.Error(), status)
}

// writeJSON encodes v before writing the status, so an encoding failure
// still reaches the client as an error.
func writeJSON(w http.ResponseWriter, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		writeError(w, fmt.Errorf("failed to encode response: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: failed to decode request body: %v", paa.ErrInvalidInput, err)
	}
	return nil
}

func observeDuration(start time.Time) {
	transformDurationHist.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
}

func (s *PAAService) TransformSequence(w http.ResponseWriter, r *http.Request) {
	defer observeDuration(time.Now())
	t, err := s.transformerFor(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var in datatypes.LabeledSequence
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	out, err := t.TransformLabeled(in)
	if err != nil {
		writeError(w, err)
		return
	}
	transformedSequences.Inc()
	writeJSON(w, out)
}

func (s *PAAService) TransformSeries(w http.ResponseWriter, r *http.Request) {
	defer observeDuration(time.Now())
	t, err := s.transformerFor(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var in datatypes.MultivariateSeries
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	out, err := t.TransformMultivariate(&in)
	if err != nil {
		writeError(w, err)
		return
	}
	transformedSequences.Add(float64(out.NumDimensions()))
	writeJSON(w, out)
}

func (s *PAAService) DescribeLayout(w http.ResponseWriter, r *http.Request) {
	t, err := s.transformerFor(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var in schema.Layout
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	out, err := schema.OutputLayout(in, t.NumIntervals())
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", paa.ErrInvalidInput, err))
		return
	}
	writeJSON(w, out)
}

func (s *PAAService) observeTs(req *prompb.WriteRequest) error {
	for _, ts := range req.Timeseries {
		metric := make(model.Metric, len(ts.Labels))
		for _, l := range ts.Labels {
			metric[model.LabelName(l.Name)] = model.LabelValue(l.Value)
		}
		mjson, err := json.Marshal(metric)
		if err != nil {
			return err
		}
		metricName := string(mjson)
		fingerprint := uint64(metric.Fingerprint())
		for _, sample := range ts.Samples {
			s.window.AddObservation(&tslib.Observation{
				MetricFingerprint: fingerprint,
				MetricName:        metricName,
				Value:             sample.Value,
				Timestamp:         time.UnixMilli(sample.Timestamp).UTC(),
			})
		}
		receivedSamples.Add(float64(len(ts.Samples)))
	}
	numberOfTimeseries.Set(float64(s.window.RowCount()))
	return nil
}

func (s *PAAService) ReceivePrometheusData(w http.ResponseWriter, r *http.Request) {
	req, err := remote.DecodeWriteRequest(r.Body)
	if err != nil {
		writeError(w, fmt.Errorf("%w: failed to decode write request: %v", paa.ErrInvalidInput, err))
		return
	}
	if err := s.observeTs(req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", paa.ErrInvalidInput, err))
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *PAAService) GetReduced(w http.ResponseWriter, r *http.Request) {
	defer observeDuration(time.Now())
	t, err := s.transformerFor(r)
	if err != nil {
		writeError(w, err)
		return
	}
	reduced, err := s.window.Reduce(t)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, reduced)
}
