// Package dashboard wires the settings, the API clients and the refresh
// slots into the data behind one DeskUp panel.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vidyasagar/deskup/internal/config"
	"github.com/vidyasagar/deskup/internal/feeds"
	"github.com/vidyasagar/deskup/internal/fetch"
	"github.com/vidyasagar/deskup/internal/logging"
	"github.com/vidyasagar/deskup/internal/refresh"
)

// Job names, also used in logs.
const (
	JobWeather       = "weather"
	JobJoke          = "joke"
	JobAnniversaries = "anniversaries"
	JobHolidays      = "holidays"
	JobTasks         = "tasks"
)

// ErrTasksNotConfigured is returned by MarkDone without Notion credentials.
var ErrTasksNotConfigured = errors.New("task list not configured")

// Clients are the API clients the dashboard fetches from.
type Clients struct {
	Weather     *feeds.WeatherClient
	Joke        *feeds.JokeClient
	Anniversary *feeds.AnniversaryClient
	Holiday     *feeds.HolidayClient
	Notion      *feeds.NotionClient
}

// NewClients builds production clients sharing one HTTP client.
func NewClients(s *config.Settings, hc *fetch.Client) Clients {
	return Clients{
		Weather:     feeds.NewWeatherClient(hc, s.WeatherAPIKey),
		Joke:        feeds.NewJokeClient(hc),
		Anniversary: feeds.NewAnniversaryClient(hc),
		Holiday:     feeds.NewHolidayClient(hc),
		Notion:      feeds.NewNotionClient(hc, s.NotionAPIKey, s.NotionDatabaseID, s.StatusProperty()),
	}
}

// Snapshot is a consistent read of every slot for one render pass.
type Snapshot struct {
	Weather       refresh.State[feeds.Weather]
	Joke          refresh.State[string]
	Anniversaries refresh.State[[]feeds.Anniversary]
	Holidays      refresh.State[[]feeds.Holiday]
	Tasks         refresh.State[[]feeds.Task]

	// Completing holds task ids hidden while their completion is in flight
	// or until a task list fetched after it has arrived.
	Completing map[string]bool
}

// VisibleTasks returns the ready tasks minus those being completed.
func (s Snapshot) VisibleTasks() []feeds.Task {
	if s.Tasks.Phase != refresh.Ready {
		return nil
	}
	out := make([]feeds.Task, 0, len(s.Tasks.Value))
	for _, t := range s.Tasks.Value {
		if !s.Completing[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

// Dashboard owns the five slots and the orchestrator driving them.
type Dashboard struct {
	settings *config.Settings
	clients  Clients
	orch     *refresh.Orchestrator
	now      func() time.Time

	weather       *refresh.Slot[feeds.Weather]
	joke          *refresh.Slot[string]
	anniversaries *refresh.Slot[[]feeds.Anniversary]
	holidays      *refresh.Slot[[]feeds.Holiday]
	tasks         *refresh.Slot[taskList]

	// epoch counts finished completions. Each task list records the epoch
	// its query started at.
	epoch atomic.Uint64

	mu         sync.Mutex
	completing map[string]bool
	done       map[string]uint64
	lastErr    error
}

type taskList struct {
	Epoch uint64
	Tasks []feeds.Task
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithClock replaces time.Now for the date-dependent fetches.
func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) {
		d.now = now
	}
}

// WithClients replaces the API clients.
func WithClients(c Clients) Option {
	return func(d *Dashboard) {
		d.clients = c
	}
}

// New registers the fetch jobs on rt. Nothing is fetched until Refresh.
func New(s *config.Settings, rt *refresh.Runtime, opts ...Option) *Dashboard {
	d := &Dashboard{
		settings:      s,
		orch:          refresh.New(rt),
		now:           time.Now,
		weather:       refresh.NewSlot[feeds.Weather](),
		joke:          refresh.NewSlot[string](),
		anniversaries: refresh.NewSlot[[]feeds.Anniversary](),
		holidays:      refresh.NewSlot[[]feeds.Holiday](),
		tasks:         refresh.NewSlot[taskList](),
		completing:    make(map[string]bool),
		done:          make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.clients.Weather == nil {
		d.clients = NewClients(s, fetch.NewClient())
	}
	d.register()
	return d
}

func (d *Dashboard) register() {
	s := d.settings
	c := d.clients

	refresh.Register(d.orch, JobWeather, d.weather, func(ctx context.Context) (feeds.Weather, error) {
		return c.Weather.Current(ctx, s.Location)
	}, refresh.WhenConfigured(s.WeatherConfigured))

	refresh.Register(d.orch, JobJoke, d.joke, c.Joke.Random)

	refresh.Register(d.orch, JobAnniversaries, d.anniversaries, func(ctx context.Context) ([]feeds.Anniversary, error) {
		return c.Anniversary.On(ctx, d.now())
	})

	refresh.Register(d.orch, JobHolidays, d.holidays, func(ctx context.Context) ([]feeds.Holiday, error) {
		return c.Holiday.PublicHolidays(ctx, d.now().Year(), s.CountryCode)
	}, refresh.WhenConfigured(s.HolidaysConfigured))

	refresh.Register(d.orch, JobTasks, d.tasks, func(ctx context.Context) (taskList, error) {
		epoch := d.epoch.Load()
		tasks, err := c.Notion.OpenTasks(ctx)
		return taskList{Epoch: epoch, Tasks: tasks}, err
	}, refresh.WhenConfigured(s.TasksConfigured))
}

// Settings returns the settings the dashboard was built from.
func (d *Dashboard) Settings() *config.Settings {
	return d.settings
}

// Orchestrator exposes the job registry.
func (d *Dashboard) Orchestrator() *refresh.Orchestrator {
	return d.orch
}

// Refresh dispatches every unset job. Call once per frame.
func (d *Dashboard) Refresh() int {
	return d.orch.Refresh()
}

// Retry resets failed jobs so the next frame fetches them again.
func (d *Dashboard) Retry() int {
	return d.orch.Retry()
}

// Loading reports whether any fetch or task completion is in flight.
func (d *Dashboard) Loading() bool {
	d.mu.Lock()
	n := len(d.completing)
	d.mu.Unlock()
	return n > 0 || d.orch.InFlight() > 0
}

// Snapshot reads every slot.
func (d *Dashboard) Snapshot() Snapshot {
	list := d.tasks.Load()

	d.mu.Lock()
	completing := make(map[string]bool, len(d.completing)+len(d.done))
	for id := range d.completing {
		completing[id] = true
	}
	for id, epoch := range d.done {
		switch {
		case list.Phase != refresh.Ready || list.Value.Epoch < epoch:
			completing[id] = true
		default:
			delete(d.done, id)
		}
	}
	d.mu.Unlock()

	return Snapshot{
		Weather:       d.weather.Load(),
		Joke:          d.joke.Load(),
		Anniversaries: d.anniversaries.Load(),
		Holidays:      d.holidays.Load(),
		Tasks: refresh.State[[]feeds.Task]{
			Phase: list.Phase,
			Value: list.Value.Tasks,
			Err:   list.Err,
		},
		Completing: completing,
	}
}

// MarkDone dispatches the completion of one task and returns immediately.
// The task is hidden until the request finishes. On success the task list
// is reloaded and the task stays hidden until a list queried after the
// completion arrives. On failure the task reappears and the error is kept
// for TakeError.
func (d *Dashboard) MarkDone(taskID string) error {
	if !d.settings.TasksConfigured() {
		return ErrTasksNotConfigured
	}

	d.mu.Lock()
	if d.completing[taskID] {
		d.mu.Unlock()
		return nil
	}
	d.completing[taskID] = true
	d.mu.Unlock()

	ok := d.orch.Runtime().Go("mark-done", func(ctx context.Context) {
		err := d.clients.Notion.MarkDone(ctx, taskID)
		if err != nil {
			logging.Error("task completion failed", "task", taskID, "err", err)
		} else {
			logging.Info("task completed", "task", taskID)
		}

		d.mu.Lock()
		if err != nil {
			d.lastErr = err
		} else {
			d.done[taskID] = d.epoch.Add(1)
		}
		delete(d.completing, taskID)
		d.mu.Unlock()

		if err == nil {
			d.orch.Reload(JobTasks)
		}
	})
	if !ok {
		d.mu.Lock()
		delete(d.completing, taskID)
		d.mu.Unlock()
		return fmt.Errorf("completing task %s: runtime busy", taskID)
	}
	return nil
}

// TakeError returns and clears the last task-completion error.
func (d *Dashboard) TakeError() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	err := d.lastErr
	d.lastErr = nil
	return err
}

// Wait blocks until every job has settled.
func (d *Dashboard) Wait(ctx context.Context) error {
	return d.orch.Wait(ctx)
}

// Close cancels in-flight fetches.
func (d *Dashboard) Close() {
	d.orch.Close()
}
