package logbook

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/edgewalker/leagueops/internal/cache"
	"github.com/edgewalker/leagueops/internal/model"
	"github.com/edgewalker/leagueops/internal/notify"
	"github.com/edgewalker/leagueops/internal/storage"
	"github.com/edgewalker/leagueops/internal/storage/memory"
	"github.com/edgewalker/leagueops/internal/testutil"
)

type brokenLogStore struct {
	storage.Store
}

var errLogsDown = errors.New("logs down")

func (b *brokenLogStore) SaveLog(context.Context, string, *model.Snapshot) error {
	return errLogsDown
}

func (b *brokenLogStore) GetLog(context.Context, string) (*model.Snapshot, error) {
	return nil, errLogsDown
}

func (b *brokenLogStore) ListLogDates(context.Context) ([]string, error) {
	return nil, errLogsDown
}

type ServiceSuite struct {
	suite.Suite
	remote  *memory.Store
	cache   *cache.FileCache
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.remote = memory.New()
	c, err := cache.NewFileCache(s.T().TempDir())
	s.Require().NoError(err)
	s.cache = c
	s.service = New(s.remote, s.cache, notify.Noop{}, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) sampleSnap(names ...string) *model.Snapshot {
	snap := model.NewSnapshot()
	snap.Players = append(snap.Players, names...)
	snap.AddedSeq = append(snap.AddedSeq, names...)
	return snap
}

func (s *ServiceSuite) TestSaveAndGet() {
	snap := s.sampleSnap("Jordan #7 (PF, CAPTAIN)")
	s.Require().NoError(s.service.Save(s.ctx, "2026-08-30", snap))

	got, err := s.service.Get(s.ctx, "2026-08-30")
	s.Require().NoError(err)
	s.Equal(snap.Players, got.Players)
}

func (s *ServiceSuite) TestSaveRejectsBadDate() {
	s.ErrorIs(s.service.Save(s.ctx, "30/08/2026", s.sampleSnap()), model.ErrInvalidDate)
	s.ErrorIs(s.service.Save(s.ctx, "", s.sampleSnap()), model.ErrInvalidDate)
}

func (s *ServiceSuite) TestGetUnknownDate() {
	_, err := s.service.Get(s.ctx, "1999-01-01")
	s.ErrorIs(err, model.ErrLogNotFound)
}

func (s *ServiceSuite) TestSaveOverwritesSameDate() {
	s.Require().NoError(s.service.Save(s.ctx, "2026-08-30", s.sampleSnap("First")))
	s.Require().NoError(s.service.Save(s.ctx, "2026-08-30", s.sampleSnap("Second")))

	got, err := s.service.Get(s.ctx, "2026-08-30")
	s.Require().NoError(err)
	s.Equal([]string{"Second"}, got.Players)
}

func (s *ServiceSuite) TestSaveKeepsLocalCopyWhenRemoteFails() {
	broken := New(&brokenLogStore{Store: s.remote}, s.cache, notify.Noop{}, testutil.NopLogger())

	s.Require().NoError(broken.Save(s.ctx, "2026-08-30", s.sampleSnap("Jordan")))

	// Remote write failed, but the local fallback copy serves reads.
	got, err := broken.Get(s.ctx, "2026-08-30")
	s.Require().NoError(err)
	s.Equal([]string{"Jordan"}, got.Players)
}

func (s *ServiceSuite) TestListDatesMergesRemoteAndLocal() {
	// One log saved normally (remote + local), one only local.
	s.Require().NoError(s.service.Save(s.ctx, "2026-08-29", s.sampleSnap("Both")))

	logs := s.cache.LoadLogs()
	logs["2026-08-30"] = s.sampleSnap("Local only")
	s.Require().NoError(s.cache.SaveLogs(logs))

	dates, err := s.service.ListDates(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"2026-08-30", "2026-08-29"}, dates)
}

func (s *ServiceSuite) TestListDatesLocalOnlyWhenRemoteDown() {
	broken := New(&brokenLogStore{Store: s.remote}, s.cache, notify.Noop{}, testutil.NopLogger())
	s.Require().NoError(broken.Save(s.ctx, "2026-08-30", s.sampleSnap("Jordan")))

	dates, err := broken.ListDates(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"2026-08-30"}, dates)
}

func (s *ServiceSuite) TestClearRemoteKeepsLocal() {
	s.Require().NoError(s.service.Save(s.ctx, "2026-08-30", s.sampleSnap("Jordan")))

	s.Require().NoError(s.service.ClearRemote(s.ctx))

	_, err := s.remote.GetLog(s.ctx, "2026-08-30")
	s.ErrorIs(err, model.ErrLogNotFound)

	got, err := s.service.Get(s.ctx, "2026-08-30")
	s.Require().NoError(err)
	s.Equal([]string{"Jordan"}, got.Players)
}

func (s *ServiceSuite) TestClearLocalKeepsRemote() {
	s.Require().NoError(s.service.Save(s.ctx, "2026-08-30", s.sampleSnap("Jordan")))

	s.Require().NoError(s.service.ClearLocal())

	got, err := s.service.Get(s.ctx, "2026-08-30")
	s.Require().NoError(err)
	s.Equal([]string{"Jordan"}, got.Players)
	s.Empty(s.cache.LoadLogs())
}

func (s *ServiceSuite) TestClearBoth() {
	s.Require().NoError(s.service.Save(s.ctx, "2026-08-30", s.sampleSnap("Jordan")))

	s.Require().NoError(s.service.ClearBoth(s.ctx))

	_, err := s.service.Get(s.ctx, "2026-08-30")
	s.ErrorIs(err, model.ErrLogNotFound)

	dates, err := s.service.ListDates(s.ctx)
	s.Require().NoError(err)
	s.Empty(dates)
}
