package service

import (
	"testing"
	"time"
)

// 缓存键必须随完成数或最近完成时间变化，否则交卷后会读到旧报告
func TestAnalyticsCacheKey(t *testing.T) {
	s := &AnalyticsService{}
	ts := time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)

	base := s.cacheKey("t1", 7, 12, &ts)
	if base != "analytics:t1:7:12:1741595400" {
		t.Fatalf("unexpected key %q", base)
	}

	if s.cacheKey("t1", 7, 13, &ts) == base {
		t.Error("key should change when completed count changes")
	}

	later := ts.Add(time.Hour)
	if s.cacheKey("t1", 7, 12, &later) == base {
		t.Error("key should change when latest completion changes")
	}

	if s.cacheKey("t2", 7, 12, &ts) == base {
		t.Error("key should be tenant scoped")
	}

	if s.cacheKey("t1", 7, 0, nil) != "analytics:t1:7:0:0" {
		t.Errorf("nil latest should encode as zero, got %q", s.cacheKey("t1", 7, 0, nil))
	}
}
