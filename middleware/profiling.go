package middleware

import (
	"sync"

	"github.com/grafana/pyroscope-go"

	"github.com/duynhne/post-service/config"
)

var (
	profilerMu sync.Mutex
	profiler   *pyroscope.Profiler
)

// InitProfiling starts continuous profiling against the configured Pyroscope server.
func InitProfiling(cfg *config.Config) error {
	p, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.Service.Name,
		ServerAddress:   cfg.Profiling.Endpoint,
		Tags: map[string]string{
			"env":     cfg.Service.Env,
			"version": cfg.Service.Version,
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return err
	}

	profilerMu.Lock()
	profiler = p
	profilerMu.Unlock()
	return nil
}

// StopProfiling flushes and stops the profiler if one is running.
func StopProfiling() {
	profilerMu.Lock()
	defer profilerMu.Unlock()
	if profiler != nil {
		_ = profiler.Stop()
		profiler = nil
	}
}
