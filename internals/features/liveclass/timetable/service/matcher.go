package service

import (
	"context"
	"time"

	sessionmodel "jbh_backend/internals/features/liveclass/sessions/model"
	"jbh_backend/internals/features/liveclass/timetable/model"
	helper "jbh_backend/internals/helpers"
)

const (
	// Sessions older than this are treated as stale rows from crashed
	// meetings and never matched.
	staleSessionWindow = 12 * time.Hour

	// A session only belongs to a slot when it started strictly less than
	// this far from the slot's scheduled time.
	slotMatchWindow = 90 * time.Minute
)

type MatchResult struct {
	IsLive  bool
	Session *sessionmodel.LiveSessionModel
}

// MatchLiveSession decides whether one of the instructor's in-progress
// sessions is THIS slot's class. One instructor can run several courses on
// the same day; attaching "any live session by this instructor" to every
// slot would cross-attribute a physics room onto a math slot. Candidates
// must carry Lesson.Module so the course can be checked.
func MatchLiveSession(slot model.ScheduleSlotModel, candidates []sessionmodel.LiveSessionModel, now time.Time) MatchResult {
	var (
		best     *sessionmodel.LiveSessionModel
		bestDiff time.Duration
	)

	for i := range candidates {
		s := &candidates[i]
		if s.Status != sessionmodel.SessionLive {
			continue
		}
		if s.InstructorID != slot.InstructorID {
			continue
		}
		if s.Lesson == nil || s.Lesson.Module == nil || s.Lesson.Module.CourseID != slot.CourseID {
			continue
		}
		if s.StartTime.Before(now.Add(-staleSessionWindow)) {
			continue
		}

		// Project the slot's wall-clock start onto the candidate's calendar
		// day and compare.
		scheduled, err := helper.ProjectWallClock(slot.StartTime, s.StartTime)
		if err != nil {
			continue
		}
		diff := s.StartTime.Sub(scheduled)
		if diff < 0 {
			diff = -diff
		}
		if diff >= slotMatchWindow {
			continue
		}
		if best == nil || diff < bestDiff {
			best = s
			bestDiff = diff
		}
	}

	if best == nil {
		return MatchResult{IsLive: false}
	}
	return MatchResult{IsLive: true, Session: best}
}

// LiveCandidates loads the live sessions eligible for matching against an
// instructor's slots, with the lesson->module chain preloaded.
func (r *Resolver) LiveCandidates(ctx context.Context, instructorIDs []int, now time.Time) ([]sessionmodel.LiveSessionModel, error) {
	if len(instructorIDs) == 0 {
		return nil, nil
	}
	var sessions []sessionmodel.LiveSessionModel
	err := r.db.WithContext(ctx).
		Preload("Lesson.Module").
		Where("instructor_id IN ? AND status = ? AND start_time >= ?",
			instructorIDs, sessionmodel.SessionLive, now.Add(-staleSessionWindow)).
		Find(&sessions).Error
	return sessions, err
}
