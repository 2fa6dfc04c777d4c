package tide

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/simplesurance/tidegate/internal/logfields"
)

const metricNamespace = "tidegate"

const (
	githubEventsMetricName    = "processed_github_events_total"
	gateEvaluationsMetricName = "gate_evaluations_total"
	checkRunOpsMetricName     = "check_run_operations_total"
	mergesMetricName          = "merges_total"
	deniedLabelsMetricName    = "denied_labels_total"
)

const (
	eventLabel     = "event"
	resultLabel    = "result"
	verdictLabel   = "verdict"
	operationLabel = "operation"
	labelLabel     = "label"
)

type resultLabelVal string

const (
	resultLabelSuccessVal resultLabelVal = "success"
	resultLabelFailureVal resultLabelVal = "failure"
)

type operationLabelVal string

const (
	operationLabelCreateVal   operationLabelVal = "create"
	operationLabelRestartVal  operationLabelVal = "restart"
	operationLabelCompleteVal operationLabelVal = "complete"
)

type metricCollector struct {
	logger          *zap.Logger
	processedEvents *prometheus.CounterVec
	gateEvaluations *prometheus.CounterVec
	checkRunOps     *prometheus.CounterVec
	merges          *prometheus.CounterVec
	deniedLabels    *prometheus.CounterVec
}

var metrics = newMetricCollector()

func newMetricCollector() *metricCollector {
	return &metricCollector{
		logger: zap.L().Named(loggerName).Named("metrics"),
		processedEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      githubEventsMetricName,
				Help:      "count of processed github webhook events",
			},
			[]string{eventLabel, resultLabel},
		),
		gateEvaluations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      gateEvaluationsMetricName,
				Help:      "count of merge gate evaluations",
			},
			[]string{verdictLabel},
		),
		checkRunOps: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      checkRunOpsMetricName,
				Help:      "count of check run create and update operations",
			},
			[]string{operationLabel},
		),
		merges: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      mergesMetricName,
				Help:      "count of pull request merge attempts",
			},
			[]string{resultLabel},
		),
		deniedLabels: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      deniedLabelsMetricName,
				Help:      "count of labels that were requested by unauthorized users",
			},
			[]string{labelLabel},
		),
	}
}

func (m *metricCollector) logGetMetricFailed(metricName string, err error) {
	m.logger.Warn(
		"could not record metric",
		zap.String("metric", metricName),
		logfields.Event("recording_metric_failed"),
		zap.Error(err),
	)
}

func resultVal(err error) resultLabelVal {
	if err != nil {
		return resultLabelFailureVal
	}

	return resultLabelSuccessVal
}

func (m *metricCollector) ProcessedEventsInc(eventName string, processErr error) {
	cnt, err := m.processedEvents.GetMetricWith(prometheus.Labels{
		eventLabel:  eventName,
		resultLabel: string(resultVal(processErr)),
	})
	if err != nil {
		m.logGetMetricFailed(githubEventsMetricName, err)
		return
	}

	cnt.Inc()
}

func (m *metricCollector) GateEvaluationsInc(pass bool) {
	verdict := "fail"
	if pass {
		verdict = "pass"
	}

	cnt, err := m.gateEvaluations.GetMetricWith(prometheus.Labels{verdictLabel: verdict})
	if err != nil {
		m.logGetMetricFailed(gateEvaluationsMetricName, err)
		return
	}

	cnt.Inc()
}

func (m *metricCollector) CheckRunOpsInc(op operationLabelVal) {
	cnt, err := m.checkRunOps.GetMetricWith(prometheus.Labels{operationLabel: string(op)})
	if err != nil {
		m.logGetMetricFailed(checkRunOpsMetricName, err)
		return
	}

	cnt.Inc()
}

func (m *metricCollector) MergesInc(mergeErr error) {
	cnt, err := m.merges.GetMetricWith(prometheus.Labels{resultLabel: string(resultVal(mergeErr))})
	if err != nil {
		m.logGetMetricFailed(mergesMetricName, err)
		return
	}

	cnt.Inc()
}

func (m *metricCollector) DeniedLabelsInc(labels []string) {
	for _, l := range labels {
		cnt, err := m.deniedLabels.GetMetricWith(prometheus.Labels{labelLabel: l})
		if err != nil {
			m.logGetMetricFailed(deniedLabelsMetricName, err)
			continue
		}

		cnt.Inc()
	}
}
