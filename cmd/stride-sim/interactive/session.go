// Package interactive provides the interactive command-line interface
// for the workout simulator.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/openstride/stride-go/internal/testharness/sim"
	"github.com/openstride/stride-go/pkg/activity"
	"github.com/openstride/stride-go/pkg/geo"
	"github.com/openstride/stride-go/pkg/persistence"
	"github.com/openstride/stride-go/pkg/session"
	"github.com/openstride/stride-go/pkg/split"
	"github.com/openstride/stride-go/pkg/telemetry"
)

// simOrigin is where every simulated route starts.
var simOrigin = geo.Point{Lat: 52.520008, Lon: 13.404954}

// simScript holds the per-activity synthetic telemetry parameters.
type simScript struct {
	speed       float64 // m/s
	climbRate   float64 // m/s
	hrBase      float64
	hrRamp      float64
	stepRate    float64 // steps/s
	calorieRate float64 // kcal/min
}

func scriptFor(t activity.Type) simScript {
	switch t {
	case activity.TypeWalking:
		return simScript{speed: 1.5, hrBase: 95, hrRamp: 0.2, stepRate: 1.8, calorieRate: 4.5}
	case activity.TypeHiking:
		return simScript{speed: 1.3, climbRate: 0.08, hrBase: 110, hrRamp: 0.3, stepRate: 1.7, calorieRate: 7}
	case activity.TypeCycling:
		return simScript{speed: 7.5, hrBase: 125, hrRamp: 0.4, calorieRate: 11}
	default:
		return simScript{speed: 3.2, hrBase: 135, hrRamp: 0.5, stepRate: 2.9, calorieRate: 13}
	}
}

// Session handles interactive mode for stride-sim.
type Session struct {
	ctrl    *session.Controller
	store   *persistence.RecordStore
	profile activity.Profile
	rl      *readline.Instance

	// Simulated telemetry sources, live while a session runs.
	position  *sim.StreamSource
	biometric *sim.StreamSource
	feedDone  chan struct{}
}

// New creates a new interactive session handler.
func New(ctrl *session.Controller, store *persistence.RecordStore, profile activity.Profile) (*Session, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "stride> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := &Session{
		ctrl:    ctrl,
		store:   store,
		profile: profile,
		rl:      rl,
	}

	// Display split completions as they happen.
	ctrl.Subscribe(splitPrinter{out: rl.Stdout(), refresh: rl.Refresh})

	return s, nil
}

// Stdout returns a writer that coordinates with the readline prompt.
func (s *Session) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Run starts the interactive command loop.
func (s *Session) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()
	defer s.stopSources()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "start":
			s.cmdStart()

		case "pause", "p":
			s.cmdPause()

		case "resume", "r":
			s.cmdResume()

		case "end", "e":
			s.cmdEnd()

		case "cancel":
			s.cmdCancel()

		case "status", "s":
			s.cmdStatus()

		case "splits":
			s.cmdSplits()

		case "records":
			s.cmdRecords()

		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return

		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (s *Session) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
Stride Simulator Commands:
  Session:
    start              - Start a session (begins synthetic telemetry)
    pause              - Pause the session
    resume             - Resume a paused session
    end                - End the session and save the record
    cancel             - Discard the session without a record

  Inspection:
    status             - Show session state and live metrics
    splits             - List completed splits and the current one
    records            - List saved workout records

  General:
    help               - Show this help
    quit               - Exit`)
}

func (s *Session) cmdStart() {
	if err := s.ctrl.Start(time.Now()); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Cannot start: %v\n", err)
		return
	}
	s.startSources()
	fmt.Fprintf(s.rl.Stdout(), "Session started (%s, id %s)\n",
		s.ctrl.Activity(), shortID(s.ctrl.SessionID()))
}

func (s *Session) cmdPause() {
	if err := s.ctrl.Pause(time.Now()); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Cannot pause: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), "Paused")
}

func (s *Session) cmdResume() {
	if err := s.ctrl.Resume(time.Now()); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Cannot resume: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), "Resumed")
}

func (s *Session) cmdEnd() {
	record, err := s.ctrl.End(time.Now())
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Cannot end: %v\n", err)
		return
	}
	s.stopSources()

	if err := s.store.Save(record); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Failed to save record: %v\n", err)
	} else {
		fmt.Fprintf(s.rl.Stdout(), "Record saved: %s\n", record.ID)
	}
	s.printRecordSummary(record)

	// Back to IDLE so another session can start.
	s.ctrl.Cancel()
}

func (s *Session) cmdCancel() {
	s.stopSources()
	s.ctrl.Cancel()
	fmt.Fprintln(s.rl.Stdout(), "Session discarded")
}

func (s *Session) cmdStatus() {
	now := time.Now()
	state := s.ctrl.State()

	fmt.Fprintln(s.rl.Stdout(), "\nSession Status")
	fmt.Fprintln(s.rl.Stdout(), "-------------------------------------------")
	fmt.Fprintf(s.rl.Stdout(), "  Activity:  %s\n", s.ctrl.Activity())
	fmt.Fprintf(s.rl.Stdout(), "  State:     %s\n", state)
	if state == session.StateIdle {
		fmt.Fprintln(s.rl.Stdout(), )
		return
	}

	snap := s.ctrl.Snapshot()
	elapsed := s.ctrl.ElapsedActive(now)

	fmt.Fprintf(s.rl.Stdout(), "  Session:   %s\n", shortID(s.ctrl.SessionID()))
	fmt.Fprintf(s.rl.Stdout(), "  Elapsed:   %s\n", formatDuration(elapsed))
	fmt.Fprintf(s.rl.Stdout(), "  Distance:  %.0f m\n", snap.Metrics.Distance)
	fmt.Fprintf(s.rl.Stdout(), "  Pace:      %s\n", activity.FormatPace(activity.Pace(elapsed, snap.Metrics.Distance)))
	if snap.Metrics.HeartRate.Samples > 0 {
		fmt.Fprintf(s.rl.Stdout(), "  Heart:     %.0f bpm (avg %.0f)\n",
			snap.Metrics.HeartRate.Latest, snap.Metrics.HeartRate.Avg)
	}
	if snap.Metrics.Calories > 0 {
		fmt.Fprintf(s.rl.Stdout(), "  Calories:  %.0f kcal\n", snap.Metrics.Calories)
	}
	if snap.Metrics.Steps > 0 {
		fmt.Fprintf(s.rl.Stdout(), "  Steps:     %d\n", snap.Metrics.Steps)
	}
	if snap.Metrics.ElevationGain > 0 || snap.Metrics.ElevationLoss > 0 {
		fmt.Fprintf(s.rl.Stdout(), "  Elevation: +%.0f / -%.0f m\n",
			snap.Metrics.ElevationGain, snap.Metrics.ElevationLoss)
	}
	fmt.Fprintf(s.rl.Stdout(), "  Splits:    %d completed\n", len(s.ctrl.CompletedSplits()))

	d := snap.Diagnostics
	anomalies := d.RejectedFixes + d.ClampedFixes + d.RejectedBiometrics + d.ClampedCalories + d.ClampedSteps
	if anomalies > 0 {
		fmt.Fprintf(s.rl.Stdout(), "  Anomalies: %d (fixes %d/%d, biometrics %d)\n",
			anomalies, d.RejectedFixes, d.ClampedFixes, d.RejectedBiometrics)
	}
	fmt.Fprintln(s.rl.Stdout(), )
}

func (s *Session) cmdSplits() {
	completed := s.ctrl.CompletedSplits()
	if len(completed) == 0 && s.ctrl.State() == session.StateIdle {
		fmt.Fprintln(s.rl.Stdout(), "No session")
		return
	}

	fmt.Fprintln(s.rl.Stdout(), "\nSplits")
	fmt.Fprintln(s.rl.Stdout(), "-------------------------------------------")
	for _, sp := range completed {
		fmt.Fprintf(s.rl.Stdout(), "  %2d  %5.0f m  %8s  %s\n",
			sp.Index, sp.Distance, formatDuration(sp.Elapsed), activity.FormatPace(sp.Pace))
	}
	if len(completed) == 0 {
		fmt.Fprintln(s.rl.Stdout(), "  none completed yet")
	}
	fmt.Fprintln(s.rl.Stdout(), )
}

func (s *Session) cmdRecords() {
	ids, err := s.store.List()
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Failed to list records: %v\n", err)
		return
	}
	if len(ids) == 0 {
		fmt.Fprintln(s.rl.Stdout(), "No saved records")
		return
	}

	fmt.Fprintf(s.rl.Stdout(), "\nSaved Records (%d):\n", len(ids))
	fmt.Fprintln(s.rl.Stdout(), "-------------------------------------------")
	for _, id := range ids {
		record, err := s.store.Load(id)
		if err != nil || record == nil {
			fmt.Fprintf(s.rl.Stdout(), "  %s (unreadable)\n", id)
			continue
		}
		fmt.Fprintf(s.rl.Stdout(), "  %s  %-8s %6.0f m  %s\n",
			record.StartedAt.Format("2006-01-02 15:04"),
			record.Activity, record.Distance, formatDuration(record.Duration))
	}
	fmt.Fprintln(s.rl.Stdout(), )
}

func (s *Session) printRecordSummary(record *session.WorkoutRecord) {
	fmt.Fprintln(s.rl.Stdout(), "\nWorkout Summary")
	fmt.Fprintln(s.rl.Stdout(), "-------------------------------------------")
	fmt.Fprintf(s.rl.Stdout(), "  Activity:  %s\n", record.Activity)
	fmt.Fprintf(s.rl.Stdout(), "  Duration:  %s", formatDuration(record.Duration))
	if record.PausedDuration > 0 {
		fmt.Fprintf(s.rl.Stdout(), " (+%s paused)", formatDuration(record.PausedDuration))
	}
	fmt.Fprintln(s.rl.Stdout(), )
	fmt.Fprintf(s.rl.Stdout(), "  Distance:  %.0f m\n", record.Distance)
	if record.AveragePace > 0 {
		fmt.Fprintf(s.rl.Stdout(), "  Avg pace:  %s\n", activity.FormatPace(record.AveragePace))
	}
	if record.Calories > 0 {
		fmt.Fprintf(s.rl.Stdout(), "  Calories:  %.0f kcal\n", record.Calories)
	}
	if record.HeartRate.Samples > 0 {
		fmt.Fprintf(s.rl.Stdout(), "  Heart:     %.0f-%.0f bpm (avg %.0f)\n",
			record.HeartRate.Min, record.HeartRate.Max, record.HeartRate.Avg)
	}
	fmt.Fprintf(s.rl.Stdout(), "  Splits:    %d\n", len(record.Splits))
	fmt.Fprintln(s.rl.Stdout(), )
}

// startSources begins the synthetic telemetry streams and the goroutine
// feeding them into the controller.
func (s *Session) startSources() {
	script := scriptFor(s.ctrl.Activity())

	s.position = sim.NewRouteStream(sim.RouteConfig{
		Origin:     simOrigin,
		BearingDeg: 90,
		Speed:      script.speed,
		Interval:   time.Second,
		Altitude:   34,
		ClimbRate:  script.climbRate,
		Accuracy:   5,
	})
	s.biometric = sim.NewBiometricStream(sim.BiometricConfig{
		HeartRateBase: script.hrBase,
		HeartRateRamp: script.hrRamp,
		StepRate:      script.stepRate,
		CalorieRate:   script.calorieRate,
		Interval:      time.Second,
	})

	s.feedDone = make(chan struct{})
	go func(pos, bio <-chan telemetry.Sample, done chan struct{}) {
		defer close(done)
		for pos != nil || bio != nil {
			select {
			case sample, ok := <-pos:
				if !ok {
					pos = nil
					continue
				}
				s.ctrl.Ingest(sample)
			case sample, ok := <-bio:
				if !ok {
					bio = nil
					continue
				}
				s.ctrl.Ingest(sample)
			}
		}
	}(s.position.Samples(), s.biometric.Samples(), s.feedDone)
}

// stopSources ends the telemetry streams. Safe when none are running.
func (s *Session) stopSources() {
	if s.position != nil {
		s.position.Stop()
	}
	if s.biometric != nil {
		s.biometric.Stop()
	}
	if s.feedDone != nil {
		<-s.feedDone
	}
	s.position = nil
	s.biometric = nil
	s.feedDone = nil
}

// splitPrinter announces completed splits above the prompt.
type splitPrinter struct {
	out     io.Writer
	refresh func()
}

func (p splitPrinter) HandleStateChange(from, to session.State) {}

func (p splitPrinter) HandleLiveMetrics(m session.LiveMetrics) {}

func (p splitPrinter) HandleSplitCompleted(sp split.Split) {
	fmt.Fprintf(p.out, "\n[%s] Split %d: %.0f m in %s (%s)\n",
		time.Now().Format("15:04:05"),
		sp.Index, sp.Distance, formatDuration(sp.Elapsed), activity.FormatPace(sp.Pace))
	p.refresh()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	sec := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}
