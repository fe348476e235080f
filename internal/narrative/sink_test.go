package narrative

import "time"

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// recorder is a Sink that keeps every change for inspection.
type recorder struct {
	logs     LogBuffer
	progress []float64
	links    int
	linkAdds []int
	tasks    []string
	finals   []float64
	calls    int
}

func (r *recorder) AppendLog(line string) {
	r.calls++
	r.logs.Append(line)
}

func (r *recorder) AppendWindowedLog(line string, window int) {
	r.calls++
	r.logs.AppendWindowed(line, window)
}

func (r *recorder) SetProgress(p float64) {
	r.calls++
	r.progress = append(r.progress, p)
}

func (r *recorder) AddLinks(n int) {
	r.calls++
	r.links += n
	r.linkAdds = append(r.linkAdds, n)
}

func (r *recorder) SetTask(label string) {
	r.calls++
	r.tasks = append(r.tasks, label)
}

func (r *recorder) SetFinal(v float64) {
	r.calls++
	r.finals = append(r.finals, v)
}
