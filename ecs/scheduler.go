package ecs

import (
	"context"
	"reflect"
	"strings"
	"time"
)

type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Ticks           uint64
	Systems         []SystemStats
}

type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type executor interface {
	Execute()
}

type registered struct {
	system  System
	queries []executor
	stats   SystemStats
}

// Scheduler runs systems in registration order against one Storage.
type Scheduler struct {
	storage  *Storage
	systems  []*registered
	commands Commands
	tick     uint64
}

func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Register wires the Query and Singleton fields of system and appends it to
// the run order.
func (s *Scheduler) Register(system System) {
	r := &registered{system: system}
	if v := reflect.ValueOf(system); v.Kind() == reflect.Pointer && v.Elem().Kind() == reflect.Struct {
		r.queries = s.wire(v.Elem(), nil)
	}

	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	r.stats = SystemStats{Name: t.Name(), MinDuration: time.Duration(1<<63 - 1)}
	s.systems = append(s.systems, r)
}

// wire initialises Query and Singleton fields, recursing into embedded
// structs, and returns the queries found.
func (s *Scheduler) wire(v reflect.Value, queries []executor) []executor {
	t := v.Type()
	for i := range v.NumField() {
		field := v.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}
		name := field.Type().Name()
		switch {
		case strings.HasPrefix(name, "Query["), strings.HasPrefix(name, "Singleton["):
			init := field.Addr().MethodByName("Init")
			if !init.IsValid() {
				panic("ecs: Init method not found on field " + t.Field(i).Name)
			}
			init.Call([]reflect.Value{reflect.ValueOf(s.storage)})
			if q, ok := field.Addr().Interface().(executor); ok {
				queries = append(queries, q)
			}
		case t.Field(i).Anonymous:
			queries = s.wire(field, queries)
		}
	}
	return queries
}

// Once runs every system a single time with dt, then flushes the commands
// they queued.
func (s *Scheduler) Once(dt time.Duration) {
	s.tick++
	frame := &UpdateFrame{
		DeltaTime: dt,
		Tick:      s.tick,
		Commands:  &s.commands,
		Storage:   s.storage,
	}

	for _, r := range s.systems {
		for _, q := range r.queries {
			q.Execute()
		}

		start := time.Now()
		r.system.Execute(frame)
		d := time.Since(start)

		st := &r.stats
		st.ExecutionCount++
		st.LastDuration = d
		st.TotalDuration += d
		st.MinDuration = min(st.MinDuration, d)
		st.MaxDuration = max(st.MaxDuration, d)
	}

	s.commands.Flush(s.storage)
}

// Run calls Once on every tick of interval until ctx is done, passing the
// measured wall-clock delta.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Once(now.Sub(last))
			last = now
		}
	}
}

func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Ticks:       s.tick,
		Systems:     make([]SystemStats, len(s.systems)),
	}
	for i, r := range s.systems {
		st := r.stats
		if st.ExecutionCount > 0 {
			st.AvgDuration = st.TotalDuration / time.Duration(st.ExecutionCount)
		} else {
			st.MinDuration = 0
		}
		stats.Systems[i] = st
		stats.TotalExecutions += st.ExecutionCount
	}
	return stats
}
