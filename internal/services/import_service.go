package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"movie-loader/internal/config"
	"movie-loader/internal/extract"
	"movie-loader/internal/models"
	"movie-loader/internal/repository"
	"movie-loader/internal/source"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrBadRecord        = errors.New("bad record")
	ErrImportInProgress = errors.New("import already in progress")
)

// RecordError ties a failure to the source row that caused it.
type RecordError struct {
	Row   int
	Title string
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("row %d (%q): %v", e.Row, e.Title, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

type ImportService interface {
	// Run performs a full reload from the named source.
	Run(ctx context.Context, name string) (*models.ImportReport, error)
	// RunFrom performs a full reload from an already opened CSV stream.
	RunFrom(ctx context.Context, r io.Reader, sourceName string) (*models.ImportReport, error)
	LastReport() *models.ImportReport
}

type importService struct {
	repos  *repository.Repositories
	opener source.Opener
	config config.ImportConfig
	logger *logrus.Logger

	mu       sync.Mutex
	lastMu   sync.RWMutex
	lastRun  *models.ImportReport
	nowFunc  func() time.Time
	newRunID func() string
}

func NewImportService(repos *repository.Repositories, opener source.Opener, cfg config.ImportConfig, logger *logrus.Logger) ImportService {
	return &importService{
		repos:    repos,
		opener:   opener,
		config:   cfg,
		logger:   logger,
		nowFunc:  func() time.Time { return time.Now().UTC() },
		newRunID: uuid.NewString,
	}
}

func (s *importService) LastReport() *models.ImportReport {
	s.lastMu.RLock()
	defer s.lastMu.RUnlock()

	if s.lastRun == nil {
		return nil
	}
	report := *s.lastRun
	return &report
}

func (s *importService) Run(ctx context.Context, name string) (*models.ImportReport, error) {
	if name == "" {
		name = s.config.File
	}
	if !s.mu.TryLock() {
		return nil, ErrImportInProgress
	}
	defer s.mu.Unlock()

	report := s.newReport(s.opener.Describe(name))
	defer s.finish(report)

	rc, err := s.opener.Open(ctx, name)
	if err != nil {
		return report, s.fail(report, fmt.Errorf("open source: %w", err))
	}
	defer rc.Close()

	return report, s.load(ctx, rc, report)
}

func (s *importService) RunFrom(ctx context.Context, r io.Reader, sourceName string) (*models.ImportReport, error) {
	if !s.mu.TryLock() {
		return nil, ErrImportInProgress
	}
	defer s.mu.Unlock()

	report := s.newReport(sourceName)
	defer s.finish(report)

	return report, s.load(ctx, r, report)
}

func (s *importService) newReport(sourceName string) *models.ImportReport {
	return &models.ImportReport{
		RunID:     s.newRunID(),
		Source:    sourceName,
		State:     models.ImportStateInit,
		StartedAt: s.nowFunc(),
	}
}

// load drives INIT -> RESETTING -> PROCESSING -> DONE. Any error returned
// from here has already moved the report to FAILED.
func (s *importService) load(ctx context.Context, r io.Reader, report *models.ImportReport) error {
	log := s.logger.WithFields(logrus.Fields{
		"run_id": report.RunID,
		"source": report.Source,
	})

	// The header is read before the reset so an unreadable source leaves the store untouched.
	reader, err := source.NewReader(r)
	if err != nil {
		return s.fail(report, err)
	}

	report.State = models.ImportStateResetting
	deleted, err := s.repos.Reset(ctx)
	if err != nil {
		return s.fail(report, fmt.Errorf("reset store: %w", err))
	}
	report.RowsDeleted = deleted
	log.WithField("rows_deleted", deleted).Info("Store cleared")

	report.State = models.ImportStateProcessing
	for {
		if err := ctx.Err(); err != nil {
			return s.fail(report, err)
		}

		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return s.fail(report, fmt.Errorf("read source: %w", err))
			}
			report.RecordsRead++
			err = &RecordError{Row: reader.Row(), Err: fmt.Errorf("%w: %w", ErrBadRecord, err)}
			if policyErr := s.handleRecordError(log, report, err); policyErr != nil {
				return policyErr
			}
			continue
		}

		report.RecordsRead++
		if err := s.loadRecord(ctx, reader.Row(), rec, report); err != nil {
			if policyErr := s.handleRecordError(log, report, err); policyErr != nil {
				return policyErr
			}
		}
	}

	report.State = models.ImportStateDone
	return nil
}

// handleRecordError applies the per-record policy: bad records are skipped,
// store failures are counted, and strict mode turns either into a run failure.
func (s *importService) handleRecordError(log *logrus.Entry, report *models.ImportReport, err error) error {
	entry := log.WithError(err)
	if errors.Is(err, ErrBadRecord) {
		report.RecordsSkipped++
		entry.Warn("Skipping bad record")
	} else {
		report.RecordsFailed++
		entry.Error("Failed to load record")
	}

	if s.config.Strict {
		return s.fail(report, err)
	}
	return nil
}

type recordCounts struct {
	genres, actors, directors, links int
}

// loadRecord writes one record in its own transaction: the movie row first,
// then every referenced entity, then the links that need both.
func (s *importService) loadRecord(ctx context.Context, row int, rec source.Record, report *models.ImportReport) error {
	title := rec[extract.FieldTitle]

	parsed, err := extract.ParseRecord(rec, s.config.DedupeLinks)
	if err != nil {
		return &RecordError{Row: row, Title: title, Err: fmt.Errorf("%w: %w", ErrBadRecord, err)}
	}

	var counts recordCounts
	var movieID uint
	err = s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		counts = recordCounts{}

		id, err := tx.Movies.Create(ctx, &parsed.Movie)
		if err != nil {
			return fmt.Errorf("insert movie: %w", err)
		}
		movieID = id

		if err := s.ensureEntities(ctx, tx, parsed, &counts); err != nil {
			return err
		}
		return s.writeLinks(ctx, tx, movieID, parsed, &counts)
	})
	if err != nil {
		return &RecordError{Row: row, Title: title, Err: err}
	}

	report.MoviesLoaded++
	report.GenresCreated += counts.genres
	report.ActorsCreated += counts.actors
	report.DirectorsCreated += counts.directors
	report.LinksWritten += counts.links

	s.logger.WithFields(logrus.Fields{
		"row":      row,
		"title":    title,
		"movie_id": movieID,
		"links":    counts.links,
	}).Debug("Movie record loaded")

	return nil
}

func (s *importService) ensureEntities(ctx context.Context, tx *repository.Repositories, rec *extract.MovieRecord, counts *recordCounts) error {
	for _, genre := range rec.Genres {
		created, err := tx.Genres.EnsureExists(ctx, genre)
		if err != nil {
			return fmt.Errorf("ensure genre %q: %w", genre, err)
		}
		if created {
			counts.genres++
		}
		s.logEnsure("genre", genre, created)
	}

	for _, actor := range rec.Actors {
		created, err := tx.Actors.EnsureExists(ctx, actor)
		if err != nil {
			return fmt.Errorf("ensure actor %q: %w", actor.String(), err)
		}
		if created {
			counts.actors++
		}
		s.logEnsure("actor", actor.String(), created)
	}

	for _, director := range rec.Directors {
		created, err := tx.Directors.EnsureExists(ctx, director)
		if err != nil {
			return fmt.Errorf("ensure director %q: %w", director.String(), err)
		}
		if created {
			counts.directors++
		}
		s.logEnsure("director", director.String(), created)
	}

	return nil
}

func (s *importService) writeLinks(ctx context.Context, tx *repository.Repositories, movieID uint, rec *extract.MovieRecord, counts *recordCounts) error {
	for _, genre := range rec.Genres {
		genreID, err := tx.Genres.ResolveID(ctx, genre)
		if err != nil {
			return err
		}
		if err := tx.Links.CreateGenreLink(ctx, movieID, genreID); err != nil {
			return fmt.Errorf("link genre %q: %w", genre, err)
		}
		counts.links++
	}

	for _, actor := range rec.Actors {
		actorID, err := tx.Actors.ResolveID(ctx, actor)
		if err != nil {
			return err
		}
		if err := tx.Links.CreateActorLink(ctx, movieID, actorID); err != nil {
			return fmt.Errorf("link actor %q: %w", actor.String(), err)
		}
		counts.links++
	}

	for _, director := range rec.Directors {
		directorID, err := tx.Directors.ResolveID(ctx, director)
		if err != nil {
			return err
		}
		if err := tx.Links.CreateDirectorLink(ctx, movieID, directorID); err != nil {
			return fmt.Errorf("link director %q: %w", director.String(), err)
		}
		counts.links++
	}

	return nil
}

func (s *importService) logEnsure(kind, key string, created bool) {
	entry := s.logger.WithFields(logrus.Fields{"kind": kind, "key": key})
	if created {
		entry.Debug("Reference entity inserted")
		return
	}
	entry.Debug("Reference entity already exists")
}

func (s *importService) fail(report *models.ImportReport, err error) error {
	report.State = models.ImportStateFailed
	report.ErrorMessage = err.Error()
	return err
}

func (s *importService) finish(report *models.ImportReport) {
	report.FinishedAt = s.nowFunc()

	entry := s.logger.WithFields(logrus.Fields{
		"run_id":            report.RunID,
		"source":            report.Source,
		"state":             report.State,
		"records_read":      report.RecordsRead,
		"movies_loaded":     report.MoviesLoaded,
		"records_skipped":   report.RecordsSkipped,
		"records_failed":    report.RecordsFailed,
		"genres_created":    report.GenresCreated,
		"actors_created":    report.ActorsCreated,
		"directors_created": report.DirectorsCreated,
		"links_written":     report.LinksWritten,
		"duration":          report.FinishedAt.Sub(report.StartedAt).String(),
	})
	if report.State == models.ImportStateFailed {
		entry.WithField("error", report.ErrorMessage).Error("Import failed")
	} else {
		entry.Info("Import completed")
	}

	snapshot := *report
	s.lastMu.Lock()
	s.lastRun = &snapshot
	s.lastMu.Unlock()
}
