package mcp

// Implementation Plan:
// 1. ScanMetrics - thread-safe scan statistics with RWMutex
// 2. MetricsSnapshot - immutable copy for concurrent readers
// 3. RecordScan - updates counters and last-scan fields together
// 4. GetMetrics - returns snapshot under read lock

import (
	"sync"
	"time"

	"github.com/mvp-joe/project-glean/internal/scanner"
)

// ScanMetrics tracks scans run on behalf of MCP clients.
// All methods are safe for concurrent use.
type ScanMetrics struct {
	lastScanTime     time.Time
	lastScanDuration time.Duration
	lastScanError    string
	lastScanFiles    int
	lastScanSkipped  int
	totalScans       int64
	successfulScans  int64
	failedScans      int64
	mu               sync.RWMutex
}

// MetricsSnapshot is a point-in-time copy of ScanMetrics.
type MetricsSnapshot struct {
	LastScanTime     time.Time     `json:"last_scan_time"`
	LastScanDuration time.Duration `json:"last_scan_duration_ns"`
	LastScanError    string        `json:"last_scan_error,omitempty"`
	LastScanFiles    int           `json:"last_scan_files"`
	LastScanSkipped  int           `json:"last_scan_skipped"`
	TotalScans       int64         `json:"total_scans"`
	SuccessfulScans  int64         `json:"successful_scans"`
	FailedScans      int64         `json:"failed_scans"`
}

// NewScanMetrics creates a ScanMetrics with zero values.
func NewScanMetrics() *ScanMetrics {
	return &ScanMetrics{}
}

// RecordScan records the outcome of one scan. report may be nil when err
// is set.
func (m *ScanMetrics) RecordScan(duration time.Duration, report *scanner.Report, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastScanTime = time.Now()
	m.lastScanDuration = duration
	m.totalScans++

	if err != nil {
		m.failedScans++
		m.lastScanError = err.Error()
		m.lastScanFiles = 0
		m.lastScanSkipped = 0
		return
	}

	m.successfulScans++
	m.lastScanError = ""
	if report != nil {
		m.lastScanFiles = len(report.Files)
		m.lastScanSkipped = report.SkippedCount()
	}
}

// GetMetrics returns a snapshot that does not change with later scans.
func (m *ScanMetrics) GetMetrics() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return MetricsSnapshot{
		LastScanTime:     m.lastScanTime,
		LastScanDuration: m.lastScanDuration,
		LastScanError:    m.lastScanError,
		LastScanFiles:    m.lastScanFiles,
		LastScanSkipped:  m.lastScanSkipped,
		TotalScans:       m.totalScans,
		SuccessfulScans:  m.successfulScans,
		FailedScans:      m.failedScans,
	}
}
