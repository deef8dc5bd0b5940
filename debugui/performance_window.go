package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
	"github.com/plus3/tetrodeck/loop"
)

// PerformanceWindow plots frame times and per-system latency.
type PerformanceWindow struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	latency       map[string][]float32
}

func NewPerformanceWindow(historyFrames int) *PerformanceWindow {
	return &PerformanceWindow{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		latency:       make(map[string][]float32),
	}
}

// record stores the frame's samples. It is separate from Render so the ring
// buffer can be exercised without an ImGui context.
func (pw *PerformanceWindow) record(deltaTime float64, stats *loop.SchedulerStats) {
	pw.frameHistory[pw.frameIndex] = float32(deltaTime * 1000.0)
	for _, sys := range stats.Systems {
		samples, ok := pw.latency[sys.Name]
		if !ok {
			samples = make([]float32, pw.historyFrames)
			pw.latency[sys.Name] = samples
		}
		samples[pw.frameIndex] = float32(sys.LastDuration) / float32(time.Millisecond)
	}
	pw.frameIndex = (pw.frameIndex + 1) % pw.historyFrames
}

func (pw *PerformanceWindow) averageFrameTime() float32 {
	var total float32
	for _, ft := range pw.frameHistory {
		total += ft
	}
	return total / float32(pw.historyFrames)
}

func (pw *PerformanceWindow) Render(frame *loop.UpdateFrame) {
	stats := frame.Stats()
	pw.record(frame.DeltaTime, stats)

	imgui.SetNextWindowPosV(imgui.NewVec2(680, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 420), imgui.CondOnce)

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := pw.averageFrameTime()
	fps := float32(0)
	if avg > 0 {
		fps = 1000.0 / avg
	}
	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, fps))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &pw.frameHistory[0], int32(len(pw.frameHistory)))

	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, sys := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if implot.BeginPlotV("System Latency", imgui.NewVec2(-1, 200), 0) {
		implot.SetupAxesV("Frame", "Time (ms)", 0, implot.AxisFlagsAutoFit)
		for _, sys := range stats.Systems {
			samples := pw.latency[sys.Name]
			implot.PlotLineFloatPtrInt(sys.Name, &samples[0], int32(len(samples)))
		}
		implot.EndPlot()
	}

	imgui.End()
}
