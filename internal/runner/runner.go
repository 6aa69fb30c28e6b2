// Package runner implements the interval scheduler: the loop that
// wakes up once per configured interval during work hours, collects a
// description of the elapsed block and persists it to the day's logs.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Emma-Ok/time-report/internal/cli"
	"github.com/Emma-Ok/time-report/internal/clock"
	"github.com/Emma-Ok/time-report/internal/config"
	"github.com/Emma-Ok/time-report/internal/entry"
	"github.com/Emma-Ok/time-report/internal/prompt"
	"github.com/Emma-Ok/time-report/internal/render"
	"github.com/Emma-Ok/time-report/internal/storage"
)

const (
	// recentCap bounds the quick-pick menu.
	recentCap = 9
	// staleNotification is how late a tick notification may fire before
	// it is suppressed instead of confusing the user with an old alert.
	staleNotification = 90 * time.Second
	// menuWidth truncates quick-pick lines for display.
	menuWidth = 60
)

// Notifier is the alert surface the runner fires on each tick.
type Notifier interface {
	Notify(title, body string)
}

// RuntimeState is the mutable state of the scheduler loop.
type RuntimeState struct {
	Day            string
	Paths          storage.DayPaths
	TickStart      time.Time
	NextTick       time.Time
	LastActivities []string
}

// Runner drives the tick loop. All collaborators are injected so tests
// can run the loop against a scripted prompter and a fixed clock.
type Runner struct {
	cfg      config.RunConfig
	clk      clock.Clock
	prompter prompt.Prompter
	notifier Notifier
	out      io.Writer
	errw     io.Writer
	styles   cli.Styles

	// poll is the idle cadence between due-ness checks and the yield
	// after a handled tick. Tests shrink it.
	poll time.Duration

	state RuntimeState
}

// New builds a Runner.
func New(cfg config.RunConfig, clk clock.Clock, prompter prompt.Prompter, notifier Notifier, out, errw io.Writer) *Runner {
	return &Runner{
		cfg:      cfg,
		clk:      clk,
		prompter: prompter,
		notifier: notifier,
		out:      out,
		errw:     errw,
		styles:   cli.DefaultStyles(),
		poll:     time.Second,
	}
}

// errStopped marks a user-initiated stop (quit choice or cancellation).
// It never escapes Run.
var errStopped = errors.New("runner stopped")

// Run executes the scheduler until the context is canceled or the user
// quits. Both are clean exits: the daily summary is exported before
// returning and the error is nil. Only setup and storage failures
// surface as errors.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.init(ctx); err != nil {
		if errors.Is(err, errStopped) {
			return r.closeOut()
		}
		return err
	}

	for {
		if ctx.Err() != nil {
			return r.closeOut()
		}

		if err := r.rotateIfNewDay(); err != nil {
			return err
		}

		if err := r.gateWorkHours(ctx); err != nil {
			if errors.Is(err, errStopped) {
				return r.closeOut()
			}
			return err
		}

		if r.clk.Now().Before(r.state.NextTick) {
			if !sleepCtx(ctx, r.poll) {
				return r.closeOut()
			}
			continue
		}

		if err := r.handleTick(ctx); err != nil {
			if errors.Is(err, errStopped) {
				return r.closeOut()
			}
			return err
		}

		if !sleepCtx(ctx, r.poll/4) {
			return r.closeOut()
		}
	}
}

// init prepares the day's files, reloads the quick-pick cache, prints
// the banner and, when started outside the work window, waits for it.
func (r *Runner) init(ctx context.Context) error {
	if err := r.openDay(r.clk.Now().Format(entry.DateFormat)); err != nil {
		return err
	}
	r.printBanner()

	if !clock.IsWorkTime(r.clk.Now(), r.cfg.Window) {
		if err := r.waitForWorkStart(ctx); err != nil {
			return err
		}
	}

	now := r.clk.Now()
	r.state.TickStart = now
	if r.cfg.Immediate {
		r.state.NextTick = now
	} else {
		r.state.NextTick = now.Add(r.cfg.Interval)
	}
	return nil
}

// openDay switches the state to the given day: resolves paths, makes
// sure the CSV has its header and reloads the recent-activity cache
// from that day's log.
func (r *Runner) openDay(day string) error {
	paths, err := storage.PathsForDay(r.cfg.BaseDir, day)
	if err != nil {
		return err
	}
	if err := storage.InitCSVIfNeeded(paths.CSV); err != nil {
		return err
	}

	r.state.Day = day
	r.state.Paths = paths
	r.state.LastActivities = r.loadRecentActivities(paths.JSONL)
	return nil
}

// loadRecentActivities scans the day's log newest-first and keeps up to
// recentCap distinct non-empty activities, returned oldest-first so the
// menu numbering is stable across restarts.
func (r *Runner) loadRecentActivities(jsonlPath string) []string {
	res, err := storage.ReadJSONL(jsonlPath)
	if err != nil {
		fmt.Fprintf(r.errw, "⚠️ No se pudo leer %s: %v\n", jsonlPath, err)
		return nil
	}
	r.reportWarnings(res.Warnings)

	var picked []string
	for i := len(res.Entries) - 1; i >= 0 && len(picked) < recentCap; i-- {
		a := res.Entries[i].Activity
		if a == "" || entry.IsSentinel(a) || contains(picked, a) {
			continue
		}
		picked = append(picked, a)
	}
	for i, j := 0, len(picked)-1; i < j; i, j = i+1, j-1 {
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked
}

// rotateIfNewDay switches the log files and resets the tick window when
// the wall-clock date no longer matches the active paths.
func (r *Runner) rotateIfNewDay() error {
	day := r.clk.Now().Format(entry.DateFormat)
	if day == r.state.Day {
		return nil
	}
	if err := r.openDay(day); err != nil {
		return err
	}
	now := r.clk.Now()
	r.state.TickStart = now
	r.state.NextTick = now.Add(r.cfg.Interval)
	fmt.Fprintf(r.out, "\n📆 Nuevo día detectado: %s. Rotando logs.\n", day)
	return nil
}

// gateWorkHours exports the summary and blocks until the next work
// start when the current time falls outside the window. Returns
// errStopped if the wait is canceled.
func (r *Runner) gateWorkHours(ctx context.Context) error {
	if clock.IsWorkTime(r.clk.Now(), r.cfg.Window) {
		return nil
	}

	if err := r.exportSummary(); err != nil {
		return err
	}
	if err := r.waitForWorkStart(ctx); err != nil {
		return err
	}

	now := r.clk.Now()
	r.state.TickStart = now
	if r.cfg.Immediate {
		r.state.NextTick = now
	} else {
		r.state.NextTick = now.Add(r.cfg.Interval)
	}
	return nil
}

// waitForWorkStart sleeps until the window opens. The sleep is bounded
// by poll so a fake clock moving into the window is noticed, and by the
// context so a signal interrupts it.
func (r *Runner) waitForWorkStart(ctx context.Context) error {
	now := r.clk.Now()
	next := clock.NextWorkStart(now, r.cfg.Window)
	wait := clock.SecondsUntil(next, now)
	fmt.Fprintf(r.out, "🧊 Fuera de horario. Próximo inicio: %s (en %d min).\n",
		entry.FormatTime(next), wait/60)

	for !clock.IsWorkTime(r.clk.Now(), r.cfg.Window) {
		remaining := time.Duration(clock.SecondsUntil(next, r.clk.Now())) * time.Second
		step := r.poll
		if remaining > 0 && remaining < step {
			step = remaining
		}
		if !sleepCtx(ctx, step) {
			return errStopped
		}
	}
	return nil
}

// handleTick processes one due tick: break auto-fill, or notify,
// prompt, persist.
func (r *Runner) handleTick(ctx context.Context) error {
	tickStart := r.state.TickStart
	tickEnd := tickStart.Add(r.cfg.Interval)

	if r.cfg.BreakEnabled && r.cfg.Break.Overlaps(tickStart, tickEnd) {
		e := entry.New(tickStart, tickEnd, entry.OnBreak, "")
		if err := r.persist(e); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "☕ Break automático: %s–%s\n", timeHHMM(tickStart), timeHHMM(tickEnd))
		r.advance(tickEnd)
		return nil
	}

	r.notifyTick(tickStart, tickEnd)
	r.printMenu(tickStart, tickEnd)

	text, timedOut, err := r.prompter.Line(ctx, "> ", r.cfg.InputTimeout)
	if err != nil {
		if errors.Is(err, prompt.ErrCanceled) {
			return errStopped
		}
		fmt.Fprintf(r.errw, "⚠️ Prompt no disponible: %v\n", err)
		return r.recordFallback(tickStart, tickEnd)
	}
	if timedOut {
		fmt.Fprintf(r.out, "⏳ Sin respuesta. Registrando %s.\n", entry.NoDetail)
		return r.recordFallback(tickStart, tickEnd)
	}

	choice := prompt.ParseChoice(text)
	if choice.Kind == prompt.ChoiceQuit {
		if err := r.exportSummary(); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "👋 Cerrando. Markdown exportado: %s\n", r.state.Paths.Markdown)
		return errStopped
	}

	activity, err := r.collectActivity(ctx, choice)
	if err != nil {
		if errors.Is(err, prompt.ErrCanceled) {
			return errStopped
		}
		fmt.Fprintf(r.errw, "⚠️ Prompt no disponible: %v\n", err)
		return r.recordFallback(tickStart, tickEnd)
	}
	tags, err := r.askTags(ctx)
	if err != nil {
		if errors.Is(err, prompt.ErrCanceled) {
			return errStopped
		}
		fmt.Fprintf(r.errw, "⚠️ Prompt no disponible: %v\n", err)
		tags = r.cfg.DefaultTags
	}

	e := entry.New(tickStart, tickEnd, activity, tags)
	r.rememberActivity(activity)
	if err := r.persist(e); err != nil {
		return err
	}
	fmt.Fprint(r.out, r.styles.Success.Render("💾 Guardado + Markdown actualizado.")+"\n\n")

	r.advance(tickEnd)
	return nil
}

// recordFallback persists the no-detail sentinel with the default tags
// after a timed-out or failed capture, so the block is never dropped.
func (r *Runner) recordFallback(tickStart, tickEnd time.Time) error {
	e := entry.New(tickStart, tickEnd, entry.NoDetail, r.cfg.DefaultTags)
	if err := r.persist(e); err != nil {
		return err
	}
	r.advance(tickEnd)
	return nil
}

// advance moves the block window forward. The next tick is due one
// interval after the nominal boundary, which may already be in the
// past if the prompt took long; the loop then fires again right away.
func (r *Runner) advance(tickEnd time.Time) {
	r.state.TickStart = tickEnd
	r.state.NextTick = tickEnd.Add(r.cfg.Interval)
}

// collectActivity resolves a parsed choice into the activity text. A
// quick-pick with no matching entry and a blank response both fall
// through to multi-line capture. Never returns an empty activity.
func (r *Runner) collectActivity(ctx context.Context, c prompt.Choice) (string, error) {
	switch c.Kind {
	case prompt.ChoiceSkip:
		return entry.Skipped, nil
	case prompt.ChoiceBreak:
		return entry.OnBreak, nil
	case prompt.ChoiceFreeText:
		return c.Text, nil
	}

	picked := ""
	switch c.Kind {
	case prompt.ChoiceRepeatLast:
		if n := len(r.state.LastActivities); n > 0 {
			picked = r.state.LastActivities[n-1]
		}
	case prompt.ChoiceRecent:
		if c.Index >= 1 && c.Index <= len(r.state.LastActivities) {
			picked = r.state.LastActivities[c.Index-1]
		}
	}

	if picked != "" {
		edited, err := r.maybeEdit(ctx, picked)
		if err != nil {
			return "", err
		}
		picked = edited
	} else {
		text, err := r.prompter.Multiline(ctx, "Describe lo que hiciste (multilínea):")
		if err != nil {
			return "", err
		}
		picked = text
	}

	if strings.TrimSpace(picked) == "" {
		return entry.NoDetail, nil
	}
	return strings.TrimSpace(picked), nil
}

// maybeEdit offers to replace a quick-picked activity with fresh text.
// Any non-blank response opens the multi-line editor.
func (r *Runner) maybeEdit(ctx context.Context, activity string) (string, error) {
	answer, timedOut, err := r.prompter.Line(ctx, "Actividad seleccionada. ¿Editar? (Enter=no / escribe algo=sí)", r.cfg.InputTimeout)
	if err != nil {
		return "", err
	}
	if timedOut || strings.TrimSpace(answer) == "" {
		return activity, nil
	}
	text, err := r.prompter.Multiline(ctx, "Nueva actividad (multilínea):")
	if err != nil {
		return "", err
	}
	return text, nil
}

// askTags prompts for the entry's tags with the same bounded timeout
// as the menu; a timeout or a blank answer keeps the configured
// default.
func (r *Runner) askTags(ctx context.Context) (string, error) {
	label := fmt.Sprintf("Tags (Enter para '%s'):", r.cfg.DefaultTags)
	answer, timedOut, err := r.prompter.Line(ctx, label, r.cfg.InputTimeout)
	if err != nil {
		return "", err
	}
	if timedOut || strings.TrimSpace(answer) == "" {
		return r.cfg.DefaultTags, nil
	}
	return strings.TrimSpace(answer), nil
}

// rememberActivity adds a real activity to the quick-pick cache.
// Sentinels and duplicates are skipped; the cache keeps the most
// recent recentCap values.
func (r *Runner) rememberActivity(activity string) {
	if activity == "" || entry.IsSentinel(activity) || contains(r.state.LastActivities, activity) {
		return
	}
	r.state.LastActivities = append(r.state.LastActivities, activity)
	if n := len(r.state.LastActivities); n > recentCap {
		r.state.LastActivities = r.state.LastActivities[n-recentCap:]
	}
}

// persist appends the entry to both durable formats and regenerates
// the daily markdown from the full log.
func (r *Runner) persist(e entry.Entry) error {
	if err := storage.AppendJSONL(r.state.Paths.JSONL, e); err != nil {
		return fmt.Errorf("append jsonl: %w", err)
	}
	if err := storage.AppendCSV(r.state.Paths.CSV, e); err != nil {
		return fmt.Errorf("append csv: %w", err)
	}
	return r.exportSummary()
}

// exportSummary rewrites the day's markdown from the authoritative
// JSONL log.
func (r *Runner) exportSummary() error {
	res, err := storage.ReadJSONL(r.state.Paths.JSONL)
	if err != nil {
		return fmt.Errorf("read day log: %w", err)
	}
	r.reportWarnings(res.Warnings)
	if err := render.WriteDaily(r.state.Paths.Markdown, res.Entries); err != nil {
		return fmt.Errorf("write daily markdown: %w", err)
	}
	return nil
}

// closeOut is the clean-shutdown path shared by quit and cancellation.
func (r *Runner) closeOut() error {
	if r.state.Paths.JSONL == "" {
		return nil
	}
	if err := r.exportSummary(); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "\n👋 Worklog detenido. Markdown exportado: %s\n", r.state.Paths.Markdown)
	return nil
}

// notifyTick fires the tick alert unless notifications are off or the
// loop is running so late the alert would be stale.
func (r *Runner) notifyTick(tickStart, tickEnd time.Time) {
	if !r.cfg.Notify || r.notifier == nil {
		return
	}
	if r.clk.Now().Sub(tickEnd) > staleNotification {
		return
	}
	r.notifier.Notify("Worklog",
		fmt.Sprintf("Registrar actividad (%s–%s)", timeHHMM(tickStart), timeHHMM(tickEnd)))
}

func (r *Runner) printBanner() {
	p := r.state.Paths
	fmt.Fprintln(r.out, r.styles.Title.Render(fmt.Sprintf("✅ time-report (TZ=%s)", r.cfg.TimezoneName)))
	fmt.Fprintf(r.out, "📁 JSONL: %s\n", r.styles.Path.Render(p.JSONL))
	fmt.Fprintf(r.out, "📁   CSV: %s\n", r.styles.Path.Render(p.CSV))
	fmt.Fprintf(r.out, "📁    MD: %s\n", r.styles.Path.Render(p.Markdown))
	fmt.Fprintf(r.out, "🕘 Horario: L–V %02d:%02d–%02d:%02d\n",
		r.cfg.Window.StartHour, r.cfg.Window.StartMinute, r.cfg.Window.EndHour, r.cfg.Window.EndMinute)
	fmt.Fprintf(r.out, "⏱️ Intervalo: %s\n", cli.FormatDuration(int(r.cfg.Interval.Minutes())))
	fmt.Fprintln(r.out, r.styles.Muted.Render("🛑 Salir: Ctrl+C"))
	fmt.Fprintln(r.out)
}

func (r *Runner) printMenu(tickStart, tickEnd time.Time) {
	fmt.Fprintln(r.out, r.styles.Muted.Render(strings.Repeat("=", 70)))
	fmt.Fprintln(r.out, r.styles.Block.Render(fmt.Sprintf("🕒 Bloque: %s–%s (%s)",
		timeHHMM(tickStart), timeHHMM(tickEnd), cli.FormatDuration(int(r.cfg.Interval.Minutes())))))
	fmt.Fprintln(r.out, r.styles.Menu.Render("Opciones: [Enter]=nuevo  /  (s)=skip  /  (b)=break  /  (q)=salir"))

	if len(r.state.LastActivities) == 0 {
		return
	}
	fmt.Fprintln(r.out, r.styles.Menu.Render("Sprint: (r)=repetir última, (1..9)=usar actividad reciente"))
	for i, a := range r.state.LastActivities {
		fmt.Fprintf(r.out, "  %d. %s\n", i+1, cli.FirstLine(a, menuWidth))
	}
}

func (r *Runner) reportWarnings(warnings []storage.ParseWarning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(r.errw, r.styles.Warning.Render(fmt.Sprintf("⚠️ %d línea(s) ilegible(s) ignoradas:", len(warnings))))
	for _, w := range warnings {
		fmt.Fprintln(r.errw, cli.FormatParseWarning(w))
	}
}

func timeHHMM(t time.Time) string {
	return t.Format("15:04")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// sleepCtx sleeps for d or until ctx is done; it reports false when
// interrupted.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
