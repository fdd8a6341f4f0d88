package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/avelar/memora/internal/models"
	"github.com/avelar/memora/internal/repository"
	"github.com/avelar/memora/internal/repository/sqlite"
	"github.com/avelar/memora/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type MasteryRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.MasteryRepository
}

func (s *MasteryRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewMasteryRepository(s.db)
}

func (s *MasteryRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

// seedCard creates the learner/project/concept chain (reusing the learner and
// project when they already exist) and returns the new card's ID.
func (s *MasteryRepositorySuite) seedCard(username, projectName, conceptTitle string) int64 {
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO learners (username) VALUES (?) ON CONFLICT(username) DO NOTHING`, username)
	s.Require().NoError(err)
	var learnerID int64
	s.Require().NoError(s.db.QueryRowContext(ctx,
		`SELECT id FROM learners WHERE username = ?`, username).Scan(&learnerID))

	var projectID int64
	err = s.db.QueryRowContext(ctx,
		`SELECT id FROM projects WHERE learner_id = ? AND name = ?`, learnerID, projectName).Scan(&projectID)
	if err == sql.ErrNoRows {
		res, insertErr := s.db.ExecContext(ctx,
			`INSERT INTO projects (learner_id, name) VALUES (?, ?)`, learnerID, projectName)
		s.Require().NoError(insertErr)
		projectID, insertErr = res.LastInsertId()
		s.Require().NoError(insertErr)
	} else {
		s.Require().NoError(err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO concepts (project_id, title) VALUES (?, ?)`, projectID, conceptTitle)
	s.Require().NoError(err)
	conceptID, err := res.LastInsertId()
	s.Require().NoError(err)

	res, err = s.db.ExecContext(ctx, `
		INSERT INTO review_cards (concept_id, learner_id, stability, difficulty, due_at)
		VALUES (?, ?, ?, ?, ?)
	`, conceptID, learnerID, 0.5, 5.0, time.Now())
	s.Require().NoError(err)
	cardID, err := res.LastInsertId()
	s.Require().NoError(err)
	return cardID
}

func (s *MasteryRepositorySuite) learnerID(username string) int64 {
	var id int64
	s.Require().NoError(s.db.QueryRowContext(context.Background(),
		`SELECT id FROM learners WHERE username = ?`, username).Scan(&id))
	return id
}

func (s *MasteryRepositorySuite) projectID(name string) int64 {
	var id int64
	s.Require().NoError(s.db.QueryRowContext(context.Background(),
		`SELECT id FROM projects WHERE name = ?`, name).Scan(&id))
	return id
}

func (s *MasteryRepositorySuite) TestGetAndUpsert() {
	ctx := context.Background()
	cardID := s.seedCard("alice", "go-basics", "pointers")

	missing, err := s.repo.Get(ctx, cardID)
	s.Require().NoError(err)
	s.Assert().Nil(missing)

	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.repo.Upsert(ctx, models.MasteryRow{
		CardID: cardID, State: "fragile", UpdatedAt: now,
	}))

	row, err := s.repo.Get(ctx, cardID)
	s.Require().NoError(err)
	s.Require().NotNil(row)
	s.Assert().Equal("fragile", row.State)

	// Upsert over an existing row replaces the state.
	s.Require().NoError(s.repo.Upsert(ctx, models.MasteryRow{
		CardID: cardID, State: "developing", UpdatedAt: now.Add(time.Hour),
	}))

	row, err = s.repo.Get(ctx, cardID)
	s.Require().NoError(err)
	s.Require().NotNil(row)
	s.Assert().Equal("developing", row.State)
}

func (s *MasteryRepositorySuite) TestCountsByState() {
	ctx := context.Background()
	now := time.Now()

	a := s.seedCard("alice", "go-basics", "pointers")
	b := s.seedCard("alice", "go-basics", "interfaces")
	c := s.seedCard("alice", "networking", "sockets")

	s.Require().NoError(s.repo.Upsert(ctx, models.MasteryRow{CardID: a, State: "fragile", UpdatedAt: now}))
	s.Require().NoError(s.repo.Upsert(ctx, models.MasteryRow{CardID: b, State: "fragile", UpdatedAt: now}))
	s.Require().NoError(s.repo.Upsert(ctx, models.MasteryRow{CardID: c, State: "solid", UpdatedAt: now}))

	learnerID := s.learnerID("alice")

	all, err := s.repo.CountsByState(ctx, learnerID, 0)
	s.Require().NoError(err)
	s.Assert().Equal(map[string]int{"fragile": 2, "solid": 1}, all)

	scoped, err := s.repo.CountsByState(ctx, learnerID, s.projectID("go-basics"))
	s.Require().NoError(err)
	s.Assert().Equal(map[string]int{"fragile": 2}, scoped)
}

func (s *MasteryRepositorySuite) TestRefreshAndCachedCounts() {
	ctx := context.Background()
	now := time.Now()

	a := s.seedCard("alice", "go-basics", "pointers")
	b := s.seedCard("alice", "networking", "sockets")

	s.Require().NoError(s.repo.Upsert(ctx, models.MasteryRow{CardID: a, State: "developing", UpdatedAt: now}))
	s.Require().NoError(s.repo.Upsert(ctx, models.MasteryRow{CardID: b, State: "mastered", UpdatedAt: now}))

	learnerID := s.learnerID("alice")
	s.Require().NoError(s.repo.RefreshCache(ctx, learnerID))

	// Project 0 holds learner-wide totals.
	totals, err := s.repo.CachedCounts(ctx, learnerID, 0)
	s.Require().NoError(err)
	s.Assert().Equal(map[string]int{"developing": 1, "mastered": 1}, totals)

	scoped, err := s.repo.CachedCounts(ctx, learnerID, s.projectID("go-basics"))
	s.Require().NoError(err)
	s.Assert().Equal(map[string]int{"developing": 1}, scoped)

	// Refresh replaces stale rows rather than accumulating them.
	s.Require().NoError(s.repo.Upsert(ctx, models.MasteryRow{CardID: a, State: "solid", UpdatedAt: now}))
	s.Require().NoError(s.repo.RefreshCache(ctx, learnerID))

	totals, err = s.repo.CachedCounts(ctx, learnerID, 0)
	s.Require().NoError(err)
	s.Assert().Equal(map[string]int{"solid": 1, "mastered": 1}, totals)
}

func TestMasteryRepositorySuite(t *testing.T) {
	suite.Run(t, new(MasteryRepositorySuite))
}
