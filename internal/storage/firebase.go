package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"

	"github.com/Fybex/naukma-schedule-parser/internal/models"
	"github.com/Fybex/naukma-schedule-parser/internal/utils"
)

// FirebaseSink publishes parsed schedules to a Firebase Realtime Database.
type FirebaseSink struct {
	client *db.Client
}

func NewFirebase(ctx context.Context, credFile, dbURL string) (*FirebaseSink, error) {
	sa := option.WithCredentialsFile(credFile)
	conf := &firebase.Config{DatabaseURL: dbURL}

	app, err := firebase.NewApp(ctx, conf, sa)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("init realtime database: %w", err)
	}
	return &FirebaseSink{client: client}, nil
}

// SaveFullUpdate replaces the published schedules and teacher index, then
// stamps the update time.
func (s *FirebaseSink) SaveFullUpdate(ctx context.Context, schedules models.FacultySchedules, teachers map[string][]utils.TeacherLesson) error {
	if err := s.client.NewRef("schedules").Set(ctx, sanitizeScheduleKeys(schedules)); err != nil {
		return fmt.Errorf("save schedules: %w", err)
	}
	if err := s.client.NewRef("teachers").Set(ctx, sanitizeTeacherKeys(teachers)); err != nil {
		return fmt.Errorf("save teachers: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	if err := s.client.NewRef("last_global_update").Set(ctx, timestamp); err != nil {
		return fmt.Errorf("save update timestamp: %w", err)
	}
	return nil
}

func sanitizeScheduleKeys(schedules models.FacultySchedules) map[string][]models.Schedule {
	out := make(map[string][]models.Schedule, len(schedules))
	for faculty, list := range schedules {
		out[sanitizeKey(faculty)] = list
	}
	return out
}

func sanitizeTeacherKeys(teachers map[string][]utils.TeacherLesson) map[string][]utils.TeacherLesson {
	out := make(map[string][]utils.TeacherLesson, len(teachers))
	for name, lessons := range teachers {
		out[sanitizeKey(name)] = lessons
	}
	return out
}

var keyReplacer = strings.NewReplacer(
	".", "_",
	"/", "-",
	"#", "",
	"$", "",
	"[", "(",
	"]", ")",
)

// sanitizeKey rewrites a map key into a legal Realtime Database path
// segment. Teacher names carry initials with periods, which RTDB forbids.
// The empty faculty key (header without a faculty cell) also needs a
// placeholder.
func sanitizeKey(key string) string {
	key = strings.TrimSpace(keyReplacer.Replace(key))
	if key == "" {
		return "_"
	}
	return key
}
