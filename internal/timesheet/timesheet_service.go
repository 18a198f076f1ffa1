package timesheet

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-timesheet/internal/project"
	"go-timesheet/internal/shared/contextutil"
	timesheeterrors "go-timesheet/internal/timesheet/errors"
	"go-timesheet/internal/workday"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=timesheet_service.go -destination=mock/timesheet_service_mock.go -package=mock
type Service interface {
	// GetWeek builds the grid for one ISO week. Saved entries win
	// wholesale over any redis draft: the draft is only consulted when
	// the week has no database rows at all.
	GetWeek(ctx context.Context, userID string, year, week int) (WeekResponse, error)
	// SaveWeek handles the three grid actions: draft parks raw input
	// in redis, save persists with submitted=false, submit validates
	// the weekly total and persists with submitted=true.
	SaveWeek(ctx context.Context, userID string, year, week int, req SaveWeekRequest) (SaveWeekResponse, error)
	// AddRow validates the project and returns a grid row prefilled
	// from existing entries or draft cells.
	AddRow(ctx context.Context, userID string, year, week int, projectID string) (RowResponse, error)
	// RemoveRow drops the project's draft cells. Saved entries are
	// untouched, matching the grid where removing a row only hides it.
	RemoveRow(ctx context.Context, userID string, year, week int, projectID string) error
}

// LeaveCalendar is the slice of the leave service the grid needs: the
// approved leave days that earn automatic credit.
type LeaveCalendar interface {
	ApprovedDates(ctx context.Context, userID string, start, end time.Time) (map[string]string, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	drafts      *DraftStore
	projectRepo project.Repository
	leaveSvc    LeaveCalendar
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	drafts *DraftStore,
	projectRepo project.Repository,
	leaveSvc LeaveCalendar,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("timesheet.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		drafts:      drafts,
		projectRepo: projectRepo,
		leaveSvc:    leaveSvc,
		logger:      l,
	}
}

type cellKey struct {
	projectID string
	date      string
}

func weekDays(year, week int) ([]time.Time, error) {
	if year < 2000 || year > 2100 || week < 1 || week > 53 {
		return nil, timesheeterrors.ErrInvalidWeek
	}
	days := workday.Week(year, week)
	// Week 53 exists only in long ISO years.
	if y, w := days[0].ISOWeek(); y != year || w != week {
		return nil, timesheeterrors.ErrInvalidWeek
	}
	return days, nil
}

func isoWeeksInYear(year int) int {
	_, w := time.Date(year, 12, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}

func (s *service) GetWeek(ctx context.Context, userID string, year, week int) (WeekResponse, error) {
	days, err := weekDays(year, week)
	if err != nil {
		return WeekResponse{}, err
	}
	weekStart, weekEnd := days[0], days[len(days)-1]

	entries, err := s.repo.FindByUserAndDates(ctx, userID, days)
	if err != nil {
		s.logger.Error("load week entries failed", zap.Error(err))
		return WeekResponse{}, err
	}

	cells := make(map[cellKey]float64)
	for _, e := range entries {
		cells[cellKey{e.ProjectID.String(), e.EntryDate.Format(dateLayout)}] = e.Hours
	}

	fromDraft := false
	if len(cells) == 0 {
		draftCells, err := s.loadParsedDraft(ctx, userID, year, week, days)
		if err != nil {
			s.logger.Warn("load draft failed", zap.Error(err))
		}
		if len(draftCells) > 0 {
			cells = draftCells
			fromDraft = true
		}
	}

	leaveDates, err := s.leaveSvc.ApprovedDates(ctx, userID, weekStart, weekEnd)
	if err != nil {
		s.logger.Error("load approved leave days failed", zap.Error(err))
		return WeekResponse{}, err
	}

	memberProjects, err := s.projectRepo.FindActiveForMember(ctx, userID)
	if err != nil {
		s.logger.Error("load member projects failed", zap.Error(err))
		return WeekResponse{}, err
	}
	byID := make(map[string]project.Project, len(memberProjects))
	for _, p := range memberProjects {
		byID[p.ID.String()] = p
	}

	usedIDs := make(map[string]bool)
	for key := range cells {
		usedIDs[key.projectID] = true
	}

	dayStrs := make([]string, len(days))
	for i, d := range days {
		dayStrs[i] = d.Format(dateLayout)
	}

	var rows []ProjectRow
	for id := range usedIDs {
		p, ok := byID[id]
		if !ok {
			// Entries on archived or left projects stay counted in the
			// totals but get no editable row.
			continue
		}
		row := ProjectRow{
			ProjectID:   id,
			ProjectCode: p.Code,
			ProjectName: p.Name,
			Hours:       make(map[string]float64, len(dayStrs)),
		}
		for _, d := range dayStrs {
			if hrs, ok := cells[cellKey{id, d}]; ok {
				row.Hours[d] = hrs
				row.RowTotal += hrs
			}
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ProjectCode < rows[j].ProjectCode })

	dayTotals := make(map[string]float64, len(dayStrs))
	weekTotal := 0.0
	var leaveDays []LeaveDay
	for _, d := range dayStrs {
		total := 0.0
		for key, hrs := range cells {
			if key.date == d {
				total += hrs
			}
		}
		if code, ok := leaveDates[d]; ok {
			total += DailyCapHours
			leaveDays = append(leaveDays, LeaveDay{Date: d, LeaveTypeCode: code})
		}
		dayTotals[d] = total
		weekTotal += total
	}

	var available []ProjectOption
	for _, p := range memberProjects {
		if usedIDs[p.ID.String()] {
			continue
		}
		available = append(available, ProjectOption{ID: p.ID.String(), Code: p.Code, Name: p.Name})
	}

	lastSubmitted, err := s.repo.LastSubmittedDate(ctx, userID, days)
	if err != nil {
		s.logger.Error("load last submitted date failed", zap.Error(err))
		return WeekResponse{}, err
	}

	resp := WeekResponse{
		Year:              year,
		Week:              week,
		WeekStart:         weekStart.Format(dateLayout),
		WeekEnd:           weekEnd.Format(dateLayout),
		Days:              dayStrs,
		Rows:              rows,
		DayTotals:         dayTotals,
		WeekTotal:         weekTotal,
		LeaveDays:         leaveDays,
		FromDraft:         fromDraft,
		AvailableProjects: available,
	}
	if !lastSubmitted.IsZero() {
		resp.LastSubmitted = lastSubmitted.Format(dateLayout)
	}

	resp.PrevYear, resp.PrevWeek = year, week-1
	if resp.PrevWeek < 1 {
		resp.PrevYear = year - 1
		resp.PrevWeek = isoWeeksInYear(year - 1)
	}
	resp.NextYear, resp.NextWeek = year, week+1
	if resp.NextWeek > isoWeeksInYear(year) {
		resp.NextYear = year + 1
		resp.NextWeek = 1
	}
	return resp, nil
}

func (s *service) loadParsedDraft(ctx context.Context, userID string, year, week int, days []time.Time) (map[cellKey]float64, error) {
	raw, err := s.drafts.Load(ctx, userID, year, week)
	if err != nil || len(raw) == 0 {
		return nil, err
	}

	inWeek := make(map[string]bool, len(days))
	for _, d := range days {
		inWeek[d.Format(dateLayout)] = true
	}

	cells := make(map[cellKey]float64)
	for field, val := range raw {
		projectID, date, ok := strings.Cut(field, "|")
		if !ok || !inWeek[date] {
			continue
		}
		hrs, err := strconv.ParseFloat(val, 64)
		if err != nil {
			// Unparsable draft text is kept in redis for the form but
			// never counted.
			continue
		}
		cells[cellKey{projectID, date}] = hrs
	}
	return cells, nil
}

func (s *service) SaveWeek(ctx context.Context, userID string, year, week int, req SaveWeekRequest) (SaveWeekResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	days, err := weekDays(year, week)
	if err != nil {
		return SaveWeekResponse{}, err
	}

	if req.Action == ActionDraft {
		return s.saveDraft(ctx, userID, year, week, days, req.Cells)
	}

	leaveDates, err := s.leaveSvc.ApprovedDates(ctx, userID, days[0], days[len(days)-1])
	if err != nil {
		s.logger.Error("load approved leave days failed", zap.Error(err))
		return SaveWeekResponse{}, err
	}

	// Saved entries on projects the post does not touch still count
	// toward each day's cap and the weekly total.
	saved, err := s.repo.FindByUserAndDates(ctx, userID, days)
	if err != nil {
		s.logger.Error("load week entries failed", zap.Error(err))
		return SaveWeekResponse{}, err
	}
	existing := make(map[cellKey]float64, len(saved))
	for _, e := range saved {
		existing[cellKey{e.ProjectID.String(), e.EntryDate.Format(dateLayout)}] = e.Hours
	}

	parsed, details := parseCells(req.Cells, days, leaveDates, existing)
	if len(details) > 0 {
		s.logger.Warn("timesheet validation failed",
			zap.String("user_id", userID),
			zap.Strings("errors", details),
		)
		return SaveWeekResponse{}, timesheeterrors.CellErrors(details)
	}

	submitted := req.Action == ActionSubmit
	manual := 0.0
	for _, hrs := range parsed {
		manual += hrs
	}
	for key, hrs := range existing {
		if _, posted := parsed[key]; !posted {
			manual += hrs
		}
	}
	leaveHours := float64(len(leaveDates)) * DailyCapHours
	weekTotal := manual + leaveHours

	if submitted {
		if len(parsed) == 0 {
			return SaveWeekResponse{}, timesheeterrors.ErrEmptySubmit
		}
		if weekTotal < ExpectedWeekHours {
			return SaveWeekResponse{}, timesheeterrors.IncompleteWeek(weekTotal, ExpectedWeekHours)
		}
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return SaveWeekResponse{}, timesheeterrors.ErrInvalidWeek
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("save week begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return SaveWeekResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qProjects := s.projectRepo.WithTx(tx)
	checked := make(map[string]bool)

	for key, hrs := range parsed {
		pid, err := uuid.Parse(key.projectID)
		if err != nil {
			return SaveWeekResponse{}, timesheeterrors.ErrProjectNotBookable
		}
		if !checked[key.projectID] {
			if _, err := qProjects.FindActiveForMemberByID(ctx, userID, key.projectID); err != nil {
				return SaveWeekResponse{}, timesheeterrors.ErrProjectNotBookable
			}
			checked[key.projectID] = true
		}

		date, _ := time.ParseInLocation(dateLayout, key.date, time.UTC)
		entry := &TimeEntry{
			ID:        uuid.New(),
			UserID:    uid,
			ProjectID: pid,
			EntryDate: date,
			Hours:     hrs,
			Submitted: submitted,
		}
		if err := qtx.Upsert(ctx, entry); err != nil {
			s.logger.Error("upsert time entry failed",
				zap.String("project_id", key.projectID),
				zap.String("date", key.date),
				zap.Error(err),
			)
			return SaveWeekResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return SaveWeekResponse{}, err
	}

	if err := s.drafts.Clear(ctx, userID, year, week); err != nil {
		s.logger.Warn("clear draft failed", zap.Error(err))
	}

	s.logger.Info("timesheet week saved",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
		zap.Int("year", year),
		zap.Int("week", week),
		zap.Int("cells", len(parsed)),
		zap.Bool("submitted", submitted),
	)
	return SaveWeekResponse{
		Action:    req.Action,
		Saved:     len(parsed),
		WeekTotal: weekTotal,
		Submitted: submitted,
	}, nil
}

// parseCells turns raw grid input into numeric cells, collecting one
// message per bad cell. Daily totals include saved entries whose
// (project, date) the post does not replace, so a post cannot stack
// hours on top of another project's saved cell. Days covered by
// approved leave are exempt from the daily cap since their credit is
// booked automatically.
func parseCells(cells []CellInput, days []time.Time, leaveDates map[string]string, existing map[cellKey]float64) (map[cellKey]float64, []string) {
	inWeek := make(map[string]bool, len(days))
	for _, d := range days {
		inWeek[d.Format(dateLayout)] = true
	}

	parsed := make(map[cellKey]float64)
	var details []string

	for _, cell := range cells {
		if cell.Hours == "" || !inWeek[cell.Date] {
			continue
		}

		hrs, err := strconv.ParseFloat(cell.Hours, 64)
		if err != nil || hrs < 0 {
			details = append(details, fmt.Sprintf("invalid hours for %s", cell.Date))
			continue
		}

		// A repeated (project, date) cell replaces the earlier value.
		parsed[cellKey{cell.ProjectID, cell.Date}] = hrs
	}

	dailyTotals := make(map[string]float64, len(days))
	for key, hrs := range parsed {
		dailyTotals[key.date] += hrs
	}
	for key, hrs := range existing {
		if _, posted := parsed[key]; !posted {
			dailyTotals[key.date] += hrs
		}
	}

	for _, d := range days {
		str := d.Format(dateLayout)
		if _, onLeave := leaveDates[str]; onLeave {
			continue
		}
		if dailyTotals[str] > DailyCapHours {
			details = append(details, fmt.Sprintf(
				"cannot exceed %g hrs on %s", DailyCapHours, d.Format("Mon 01/02"),
			))
		}
	}
	return parsed, details
}

func (s *service) saveDraft(ctx context.Context, userID string, year, week int, days []time.Time, cells []CellInput) (SaveWeekResponse, error) {
	inWeek := make(map[string]bool, len(days))
	for _, d := range days {
		inWeek[d.Format(dateLayout)] = true
	}

	fields := make(map[string]string)
	for _, cell := range cells {
		if cell.Hours == "" || !inWeek[cell.Date] {
			continue
		}
		fields[cell.ProjectID+"|"+cell.Date] = cell.Hours
	}

	if err := s.drafts.Save(ctx, userID, year, week, fields); err != nil {
		s.logger.Error("save draft failed", zap.Error(err))
		return SaveWeekResponse{}, err
	}

	s.logger.Debug("timesheet draft saved",
		zap.String("user_id", userID),
		zap.Int("year", year),
		zap.Int("week", week),
		zap.Int("cells", len(fields)),
	)
	return SaveWeekResponse{Action: ActionDraft, Saved: len(fields)}, nil
}

func (s *service) AddRow(ctx context.Context, userID string, year, week int, projectID string) (RowResponse, error) {
	days, err := weekDays(year, week)
	if err != nil {
		return RowResponse{}, err
	}

	p, err := s.projectRepo.FindActiveForMemberByID(ctx, userID, projectID)
	if err != nil {
		return RowResponse{}, timesheeterrors.ErrProjectNotBookable
	}

	entries, err := s.repo.FindByUserAndDates(ctx, userID, days)
	if err != nil {
		s.logger.Error("load entries for add row failed", zap.Error(err))
		return RowResponse{}, err
	}

	cells := make(map[cellKey]float64)
	for _, e := range entries {
		cells[cellKey{e.ProjectID.String(), e.EntryDate.Format(dateLayout)}] = e.Hours
	}
	if draftCells, err := s.loadParsedDraft(ctx, userID, year, week, days); err == nil {
		for key, hrs := range draftCells {
			cells[key] = hrs
		}
	}

	dayStrs := make([]string, len(days))
	for i, d := range days {
		dayStrs[i] = d.Format(dateLayout)
	}

	row := ProjectRow{
		ProjectID:   projectID,
		ProjectCode: p.Code,
		ProjectName: p.Name,
		Hours:       make(map[string]float64, len(dayStrs)),
	}
	for _, d := range dayStrs {
		if hrs, ok := cells[cellKey{projectID, d}]; ok {
			row.Hours[d] = hrs
			row.RowTotal += hrs
		}
	}
	return RowResponse{Row: row, Days: dayStrs}, nil
}

func (s *service) RemoveRow(ctx context.Context, userID string, year, week int, projectID string) error {
	raw, err := s.drafts.Load(ctx, userID, year, week)
	if err != nil || len(raw) == 0 {
		return nil
	}

	kept := make(map[string]string)
	for field, val := range raw {
		if pid, _, ok := strings.Cut(field, "|"); ok && pid == projectID {
			continue
		}
		kept[field] = val
	}
	if len(kept) == len(raw) {
		return nil
	}
	return s.drafts.Save(ctx, userID, year, week, kept)
}
