// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subject_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libretto/internal/core/subject"
)

type fakeRepository struct {
	elements []subject.RawSubject
}

func (repository *fakeRepository) ListRawSubjects(_ context.Context) ([]subject.RawSubject, error) {
	return repository.elements, nil
}

func newTestService(elements []subject.RawSubject) *subject.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return subject.NewService(&fakeRepository{elements: elements}, logger)
}

/*
TestService_ListSubjects verifies decoding, deduplication, count merging,
and name ordering of the aggregated vocabulary.
*/
func TestService_ListSubjects(t *testing.T) {
	service := newTestService([]subject.RawSubject{
		{Element: []byte(`"History"`), Count: 3},
		{Element: []byte(`{"name": "History"}`), Count: 2},
		{Element: []byte(`{"name": "Adventure", "code": "ADV"}`), Count: 1},
	})

	subjects, err := service.ListSubjects(context.Background())
	require.NoError(t, err)
	require.Len(t, subjects, 2)

	// Sorted by name
	assert.Equal(t, "Adventure", subjects[0].Name)
	require.NotNil(t, subjects[0].Code)
	assert.Equal(t, "ADV", *subjects[0].Code)
	assert.Equal(t, 1, subjects[0].Publications)

	// Shorthand and object shapes of the same subject are merged
	assert.Equal(t, "History", subjects[1].Name)
	assert.Equal(t, 5, subjects[1].Publications)
}

/*
TestService_ListSubjects_DropsUndecodable checks that stored elements the
subject codec cannot use disappear from the vocabulary instead of failing
the request.
*/
func TestService_ListSubjects_DropsUndecodable(t *testing.T) {
	service := newTestService([]subject.RawSubject{
		{Element: []byte(`null`), Count: 4},
		{Element: []byte(`42`), Count: 1},
		{Element: []byte(`{"scheme": "nameless"}`), Count: 1},
		{Element: []byte(`not even json`), Count: 1},
		{Element: []byte(`"Poetry"`), Count: 1},
	})

	subjects, err := service.ListSubjects(context.Background())
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "Poetry", subjects[0].Name)
}
