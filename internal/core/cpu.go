package core

const (
	IdleProcessId = "idle"
	IdleLabel     = "Idle"
	IdleColorKey  = "#e2e8f0"
)

var palette = []string{
	"#2563eb",
	"#16a34a",
	"#db2777",
	"#ea580c",
	"#7c3aed",
	"#0891b2",
	"#ca8a04",
	"#dc2626",
}

// ColorKey returns the timeline colour for the process submitted at position order.
func ColorKey(order int) string {
	return palette[order%len(palette)]
}

// TimelineSlice is one contiguous stretch of CPU time.
type TimelineSlice struct {
	ProcessId string `json:"processId"`
	Label     string `json:"label"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	ColorKey  string `json:"colorKey"`
}

func (s TimelineSlice) Duration() int {
	return s.End - s.Start
}

func (s TimelineSlice) IsIdle() bool {
	return s.ProcessId == IdleProcessId
}

type CpuMetric struct {
	TotalTime       int
	UtilizationTime int
	IdleTime        int
}

// Cpu is a single simulated core driven by a discrete clock. Every call
// appends to the timeline, so slices are contiguous by construction.
type Cpu struct {
	clock    int
	timeline []TimelineSlice
	metric   CpuMetric
}

func NewCpu(start int) *Cpu {
	return &Cpu{clock: start, timeline: make([]TimelineSlice, 0)}
}

func (c *Cpu) Clock() int {
	return c.clock
}

// IdleUntil advances the clock to t, recording the gap as idle time.
// It does nothing when t is not in the future.
func (c *Cpu) IdleUntil(t int) {
	if t <= c.clock {
		return
	}
	c.timeline = append(c.timeline, TimelineSlice{
		ProcessId: IdleProcessId,
		Label:     IdleLabel,
		Start:     c.clock,
		End:       t,
		ColorKey:  IdleColorKey,
	})
	c.metric.IdleTime += t - c.clock
	c.metric.TotalTime += t - c.clock
	c.clock = t
}

// Execute runs process for duration time units starting at the current clock
// and returns the slice boundaries.
func (c *Cpu) Execute(process ProcessSpec, order int, duration int) (start, end int) {
	start = c.clock
	end = start + duration
	c.timeline = append(c.timeline, TimelineSlice{
		ProcessId: process.Id,
		Label:     process.Name,
		Start:     start,
		End:       end,
		ColorKey:  ColorKey(order),
	})
	c.metric.UtilizationTime += duration
	c.metric.TotalTime += duration
	c.clock = end
	return start, end
}

func (c *Cpu) Timeline() []TimelineSlice {
	return c.timeline
}

func (c *Cpu) Metric() CpuMetric {
	return c.metric
}
