package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/tweetstats/internal/contract"
	"github.com/huangsam/tweetstats/internal/iocache"
	"github.com/huangsam/tweetstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const archiveHeader = "timestamp;text;likes;retweets;replies;is_replied;is_reply_to;reply_to_users;links;hashtags;img_urls;has_media;video_url\n"

// setupRoster writes a three-company roster: one with tweets, one without an archive
// and one with a header-only archive.
func setupRoster(t *testing.T) *contract.Config {
	t.Helper()
	dir := t.TempDir()
	tweets := filepath.Join(dir, "tweets")
	require.NoError(t, os.Mkdir(tweets, 0o755))

	roster := filepath.Join(dir, "companies.csv")
	require.NoError(t, os.WriteFile(roster, []byte(
		"twitter_username,first_funding_at,first2last_funding_days\n"+
			"acme,2014-03-01,412\n"+
			"globex,2013-11-20,87\n"+
			"initech,2012-06-15,300\n"), 0o644))

	require.NoError(t, os.WriteFile(filepath.Join(tweets, "acme.csv"), []byte(archiveHeader+
		"2014-01-30 12:00:00;before;1;0;0;False;False;[];[];['#a'];[];False;\n"+
		"2014-03-01 00:00:00;at event;0;0;0;False;True;['bob'];[];[];[];False;\n"+
		"2014-03-31 08:00:00;after;5;1;0;True;False;[];['http://x'];[];[];True;http://v\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tweets, "initech.csv"), []byte(archiveHeader), 0o644))

	return &contract.Config{
		RosterPath:     roster,
		TweetsDir:      tweets,
		HandleColumn:   schema.DefaultHandleColumn,
		FundingColumn:  schema.DefaultFundingColumn,
		IntervalColumn: schema.DefaultIntervalColumn,
		Output:         schema.CSVOut,
		Precision:      contract.DefaultPrecision,
		MissingText:    schema.EmptyTextPolicy,
	}
}

func TestGetRosterScores(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	cfg := setupRoster(t)
	mockMgr := &iocache.MockStoreManager{}
	mockMgr.On("GetHistoryStore").Return(nil)

	output, _, err := GetRosterScores(ctx, cfg, mockMgr)
	require.NoError(t, err)
	require.Len(t, output.Records, 3)
	assert.Equal(t, 2, output.Archives)

	handles := []string{output.Records[0].Handle, output.Records[1].Handle, output.Records[2].Handle}
	assert.Equal(t, []string{"acme", "globex", "initech"}, handles, "roster order is preserved")

	acme := output.Records[0]
	assert.Equal(t, "412", acme.FundingIntervalDays)
	assert.Equal(t, 3, acme.AllTweetNum)
	assert.Equal(t, 1, acme.PreTweetNum)
	assert.Equal(t, 2, acme.PostTweetNum)
	require.NotNil(t, acme.PreTimespan)
	assert.Equal(t, 30, *acme.PreTimespan)
	require.NotNil(t, acme.PostTimespan)
	assert.Equal(t, 30, *acme.PostTimespan)
	require.NotNil(t, acme.PostFreq)
	assert.InDelta(t, 2.0*7.0/30.0, *acme.PostFreq, 1e-12)
	require.NotNil(t, acme.PostContentRichness)
	assert.Equal(t, 1.5, *acme.PostContentRichness)
	require.NotNil(t, acme.PostInteractiveness)
	assert.Equal(t, 4.5, *acme.PostInteractiveness)

	globex := output.Records[1]
	assert.Equal(t, "2013-11-20", globex.SeriesADate)
	assert.Equal(t, 0, globex.AllTweetNum)
	assert.Nil(t, globex.PreFreq)
	assert.Nil(t, globex.PostAvgLength)

	initech := output.Records[2]
	assert.Equal(t, 0, initech.AllTweetNum)
	assert.Nil(t, initech.PreTimespan)
	assert.Nil(t, initech.PostInteractiveness)

	mockMgr.AssertExpectations(t)
}

func TestGetRosterScoresRecordsHistory(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	cfg := setupRoster(t)
	mockMgr := &iocache.MockStoreManager{}
	mockStore := &iocache.MockHistoryStore{}

	mockMgr.On("GetHistoryStore").Return(mockStore)
	mockStore.On("BeginRun", mock.AnythingOfType("time.Time"), mock.Anything).Return(int64(7), nil)
	mockStore.On("RecordCompanyScores", int64(7), mock.AnythingOfType("time.Time"), mock.AnythingOfType("schema.ScoreRecord")).Return(nil).Times(3)
	mockStore.On("EndRun", int64(7), mock.AnythingOfType("time.Time"), 3).Return(nil)

	output, _, err := GetRosterScores(ctx, cfg, mockMgr)
	require.NoError(t, err)
	assert.Len(t, output.Records, 3)

	mockMgr.AssertExpectations(t)
	mockStore.AssertExpectations(t)
}

func TestGetRosterScoresHistoryFailureIsNotFatal(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	cfg := setupRoster(t)
	mockMgr := &iocache.MockStoreManager{}
	mockStore := &iocache.MockHistoryStore{}

	mockMgr.On("GetHistoryStore").Return(mockStore)
	mockStore.On("BeginRun", mock.AnythingOfType("time.Time"), mock.Anything).Return(int64(0), errors.New("db down"))

	output, _, err := GetRosterScores(ctx, cfg, mockMgr)
	require.NoError(t, err)
	assert.Len(t, output.Records, 3)

	mockStore.AssertNotCalled(t, "RecordCompanyScores", mock.Anything, mock.Anything, mock.Anything)
	mockStore.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetRosterScoresAbortsOnMalformedArchive(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	cfg := setupRoster(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.TweetsDir, "globex.csv"), []byte(archiveHeader+
		"2014-01-01 00:00:00;x;0;0;0;False;False;[;[];[];[];False;\n"), 0o644))

	mockMgr := &iocache.MockStoreManager{}
	mockStore := &iocache.MockHistoryStore{}
	mockMgr.On("GetHistoryStore").Return(mockStore)
	mockStore.On("BeginRun", mock.AnythingOfType("time.Time"), mock.Anything).Return(int64(1), nil)
	mockStore.On("RecordCompanyScores", int64(1), mock.AnythingOfType("time.Time"), mock.AnythingOfType("schema.ScoreRecord")).Return(nil)

	output, _, err := GetRosterScores(ctx, cfg, mockMgr)
	require.Error(t, err)
	assert.Nil(t, output)
	assert.Contains(t, err.Error(), "globex")
	mockStore.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetRosterScoresCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(WithSuppressHeader(context.Background()))
	cancel()

	_, _, err := GetRosterScores(ctx, setupRoster(t), nil)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestGetCompanyScores(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	cfg := setupRoster(t)

	record, err := GetCompanyScores(ctx, cfg, "acme")
	require.NoError(t, err)
	assert.Equal(t, "acme", record.Handle)
	assert.Equal(t, 3, record.AllTweetNum)

	_, err = GetCompanyScores(ctx, cfg, "hooli")
	require.Error(t, err)
	assert.True(t, errors.Is(err, schema.ErrUnknownHandle))
}

func TestExecuteScoresWritesCSV(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	cfg := setupRoster(t)
	cfg.OutputFile = filepath.Join(t.TempDir(), "processed", "company_tweets_stats_all.csv")

	require.NoError(t, ExecuteScores(ctx, cfg, nil))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Join(schema.ScoreColumns, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "2013-11-20,,,0,0,0,"), "absent values are empty cells")
}
