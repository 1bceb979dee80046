package scheduler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"ChartBalance/internal/collector"
	"ChartBalance/internal/metrics"
	"ChartBalance/internal/notifier"
	"ChartBalance/internal/recorder"
)

const (
	processedDir = "processed"
	failedDir    = "failed"
)

// Scheduler periodically assesses chart reports dropped into an inbox directory.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Notifier  notifier.Notifier
	Recorder  recorder.Recorder
	Logger    *zap.Logger
	Metrics   *metrics.Metrics // optional
	Ctx       context.Context

	InboxDir string
	Page     int

	mu sync.Mutex
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, n notifier.Notifier, rec recorder.Recorder, logger *zap.Logger, inboxDir string, page int) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Notifier:  n,
		Recorder:  rec,
		Logger:    logger,
		Ctx:       ctx,
		InboxDir:  inboxDir,
		Page:      page,
	}
}

// Register adds the inbox scan under the given cron expression.
func (s *Scheduler) Register(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("scheduler started", zap.String("inbox", s.InboxDir))
}

// Stop stops the cron scheduler and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Logger.Info("scheduler stopped")
}

// RunScanNow scans the inbox once, logging instead of returning the error.
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	if _, err := s.ScanNow(); err != nil {
		s.Logger.Error("inbox scan", zap.Error(err))
	}
}

// ScanNow assesses every .txt file in the inbox. Assessed files move to
// processed/, files with no usable text move to failed/. It returns the
// number of files assessed.
func (s *Scheduler) ScanNow() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.InboxDir, 0o755); err != nil {
		return 0, fmt.Errorf("create inbox: %w", err)
	}
	entries, err := os.ReadDir(s.InboxDir)
	if err != nil {
		return 0, fmt.Errorf("read inbox: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	assessed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			continue
		}
		if s.Ctx.Err() != nil {
			return assessed, s.Ctx.Err()
		}
		if s.processFile(e.Name()) {
			assessed++
		}
	}
	if assessed > 0 {
		s.Logger.Info("inbox scan complete", zap.Int("assessed", assessed))
	}
	return assessed, nil
}

func (s *Scheduler) processFile(name string) bool {
	path := filepath.Join(s.InboxDir, name)
	a, err := s.Collector.Collect(collector.NewFileSource(path, s.Page))
	if err != nil {
		if errors.Is(err, collector.ErrNoText) {
			s.Metrics.ObserveAssessment("inbox", metrics.OutcomeNoText, 0)
			s.Logger.Warn("no chart text, moving to failed", zap.String("file", name), zap.Error(err))
		} else {
			s.Metrics.ObserveAssessment("inbox", metrics.OutcomeError, 0)
			s.Logger.Error("assess file", zap.String("file", name), zap.Error(err))
		}
		s.move(name, failedDir)
		s.Metrics.ObserveScanFile(failedDir)
		return false
	}
	s.Metrics.ObserveAssessment("inbox", metrics.OutcomeOK, a.Positions.Resolved())

	if err := s.Recorder.RecordAssessment(a); err != nil {
		// Leave the file in place so the next scan retries it.
		s.Logger.Error("record assessment", zap.String("file", name), zap.Error(err))
		s.Metrics.ObserveScanFile("retry")
		return false
	}
	s.trySend(notifier.FormatAssessment(a))
	s.move(name, processedDir)
	s.Metrics.ObserveScanFile(processedDir)
	return true
}

func (s *Scheduler) move(name, sub string) {
	dir := filepath.Join(s.InboxDir, sub)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.Logger.Error("create archive dir", zap.String("dir", dir), zap.Error(err))
		return
	}
	if err := os.Rename(filepath.Join(s.InboxDir, name), filepath.Join(dir, name)); err != nil {
		s.Logger.Error("archive file", zap.String("file", name), zap.Error(err))
	}
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	switch fields[0] {
	case "/latest":
		list, err := s.Recorder.ListAssessments(1)
		if err != nil {
			return errorReply(err)
		}
		if len(list) == 0 {
			return "No assessments recorded yet."
		}
		return s.show(list[0].ID)
	case "/show":
		if len(fields) < 2 {
			return "Usage: /show <id>"
		}
		return s.show(fields[1])
	case "/list":
		limit := 5
		if len(fields) > 1 {
			if n, err := strconv.Atoi(fields[1]); err == nil && n > 0 {
				limit = n
			}
		}
		return s.list(limit)
	case "/scan":
		n, err := s.ScanNow()
		if err != nil {
			return errorReply(fmt.Errorf("scan failed: %w", err))
		}
		return fmt.Sprintf("Scan complete: %d chart(s) assessed.", n)
	default:
		return helpText
	}
}

const helpText = "Available commands:\n• /latest\n• /show &lt;id&gt;\n• /list [n]\n• /scan"

func (s *Scheduler) show(id string) string {
	a, err := s.Recorder.GetAssessment(id)
	if errors.Is(err, recorder.ErrNotFound) {
		return fmt.Sprintf("No assessment with id %s.", html.EscapeString(id))
	}
	if err != nil {
		return errorReply(err)
	}
	return notifier.FormatAssessment(a)
}

func (s *Scheduler) list(limit int) string {
	list, err := s.Recorder.ListAssessments(limit)
	if err != nil {
		return errorReply(err)
	}
	if len(list) == 0 {
		return "No assessments recorded yet."
	}
	var b strings.Builder
	b.WriteString("<b>Recent assessments:</b>\n")
	for _, sum := range list {
		b.WriteString(fmt.Sprintf("%s  %s  F%d E%d A%d W%d\n  <code>%s</code>\n",
			sum.CreatedAt.Format("2006-01-02 15:04"), html.EscapeString(sum.Source),
			sum.Fire, sum.Earth, sum.Air, sum.Water, sum.ID))
	}
	return b.String()
}

func errorReply(err error) string {
	return "❌ " + html.EscapeString(err.Error())
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.Logger.Error("send notification", zap.Error(err))
	}
}
