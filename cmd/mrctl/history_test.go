package main

import (
	"context"
	"errors"
	"testing"

	"github.com/abelbrown/movierec/internal/history"
)

type fakeHistory struct {
	recentCalls, byMovieCalls int
	recentErr, byMovieErr     error
}

func (f *fakeHistory) Recent(ctx context.Context, limit int) ([]history.Entry, error) {
	f.recentCalls++
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	return []history.Entry{{MovieName: "Heat (1995)"}, {MovieName: "Up (2009)"}}, nil
}

func (f *fakeHistory) ByMovie(ctx context.Context, movieName string, limit int) ([]history.Entry, error) {
	f.byMovieCalls++
	if f.byMovieErr != nil {
		return nil, f.byMovieErr
	}
	return []history.Entry{{MovieName: movieName}}, nil
}

func TestReadHistoryByMovieSkipsRecent(t *testing.T) {
	f := &fakeHistory{recentErr: errors.New("recent failed")}

	got, err := readHistory(context.Background(), f, "Heat (1995)", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.recentCalls != 0 {
		t.Errorf("Recent called %d times, want 0", f.recentCalls)
	}
	if len(got) != 1 || got[0].MovieName != "Heat (1995)" {
		t.Errorf("got %+v", got)
	}
}

func TestReadHistoryRecent(t *testing.T) {
	f := &fakeHistory{}

	got, err := readHistory(context.Background(), f, "", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.byMovieCalls != 0 || f.recentCalls != 1 {
		t.Errorf("calls: recent=%d byMovie=%d", f.recentCalls, f.byMovieCalls)
	}
	if len(got) != 2 {
		t.Errorf("got %d entries, want 2", len(got))
	}
}

func TestReadHistoryReportsErrors(t *testing.T) {
	recentErr := errors.New("recent failed")
	if _, err := readHistory(context.Background(), &fakeHistory{recentErr: recentErr}, "", 5); !errors.Is(err, recentErr) {
		t.Errorf("Recent error = %v, want %v", err, recentErr)
	}

	byMovieErr := errors.New("by movie failed")
	if _, err := readHistory(context.Background(), &fakeHistory{byMovieErr: byMovieErr}, "Heat", 5); !errors.Is(err, byMovieErr) {
		t.Errorf("ByMovie error = %v, want %v", err, byMovieErr)
	}
}
