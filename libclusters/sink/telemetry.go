package sink

import (
	"io"
	"sync"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/plan-systems/klog"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/2x3systems/clusters/clusters"
)

// LogSink logs each Record through klog.
type LogSink struct{}

func (LogSink) OnGeneration(rec clusters.Record) {
	klog.Infof("N=%-3d candidates=%-10d gen_time=%-12v unique=%-9d filter_time=%-12v total_found=%-9d write_time=%-10v total_time=%v",
		rec.N, rec.Candidates, rec.GenTime, rec.Unique, rec.FilterTime, rec.TotalUnique, rec.WriteTime, rec.TotalTime)
}

// TableSink collects Records and renders them as a table on Close.
type TableSink struct {
	mu  sync.Mutex
	out io.Writer
	tw  table.Writer
}

func NewTableSink(out io.Writer) *TableSink {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"N", "candidates", "gen_time", "unique", "filter_time", "total_found", "write_time", "total_time"})

	align := make([]table.ColumnConfig, 8)
	for i := range align {
		align[i] = table.ColumnConfig{Number: i + 1, Align: text.AlignRight}
	}
	tw.SetColumnConfigs(align)

	return &TableSink{
		out: out,
		tw:  tw,
	}
}

func (ts *TableSink) OnGeneration(rec clusters.Record) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.tw.AppendRow(table.Row{
		rec.N, rec.Candidates, rec.GenTime, rec.Unique, rec.FilterTime, rec.TotalUnique, rec.WriteTime, rec.TotalTime,
	})
}

// Render returns the table of Records received so far.
func (ts *TableSink) Render() string {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	return ts.tw.Render()
}

// Close writes the rendered table to out.
func (ts *TableSink) Close() error {
	_, err := io.WriteString(ts.out, ts.Render()+"\n")
	return err
}

// MetricsSink exports Records as prometheus metrics, optionally written to a textfile on Close.
type MetricsSink struct {
	textfile string
	registry *prometheus.Registry

	generation  prometheus.Gauge
	totalUnique prometheus.Gauge
	candidates  prometheus.Counter
	unique      prometheus.Counter
	phaseTime   *prometheus.HistogramVec
}

// NewMetricsSink returns a MetricsSink with its own registry.  If textfile is set, Close writes the
// registry there in the text exposition format.
func NewMetricsSink(textfile string) *MetricsSink {
	ms := &MetricsSink{
		textfile: textfile,
		registry: prometheus.NewRegistry(),
		generation: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "clusters_generation",
			Help: "Vertex count of the last completed generation",
		}),
		totalUnique: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "clusters_unique_graphs",
			Help: "Unique graphs produced so far, seed included",
		}),
		candidates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clusters_candidates_total",
			Help: "Raw candidates generated",
		}),
		unique: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clusters_deduplicated_total",
			Help: "Candidates surviving deduplication",
		}),
		phaseTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clusters_phase_seconds",
			Help:    "Time spent in each phase of a generation",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12),
		}, []string{"phase"}),
	}
	ms.registry.MustRegister(ms.generation, ms.totalUnique, ms.candidates, ms.unique, ms.phaseTime)
	return ms
}

// Registry returns the registry holding this sink's metrics.
func (ms *MetricsSink) Registry() *prometheus.Registry {
	return ms.registry
}

func (ms *MetricsSink) OnGeneration(rec clusters.Record) {
	ms.generation.Set(float64(rec.N))
	ms.totalUnique.Set(float64(rec.TotalUnique))
	ms.candidates.Add(float64(rec.Candidates))
	ms.unique.Add(float64(rec.Unique))
	ms.phaseTime.WithLabelValues("generate").Observe(rec.GenTime.Seconds())
	ms.phaseTime.WithLabelValues("filter").Observe(rec.FilterTime.Seconds())
	ms.phaseTime.WithLabelValues("write").Observe(rec.WriteTime.Seconds())
}

func (ms *MetricsSink) Close() error {
	if ms.textfile == "" {
		return nil
	}
	return prometheus.WriteToTextfile(ms.textfile, ms.registry)
}
