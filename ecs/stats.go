package ecs

import "slices"

type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// StorageStats is a point-in-time summary used by debug tooling.
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
}

func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		ArchetypeCount: len(s.order),
		SingletonCount: len(s.singletons),
	}
	for _, a := range s.order {
		names := make([]string, len(a.types))
		for i, t := range a.types {
			names[i] = t.String()
		}
		n := a.Len()
		stats.TotalEntityCount += n
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             a.id,
			ComponentTypes: names,
			EntityCount:    n,
		})
	}
	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	slices.Sort(stats.SingletonTypes)
	return stats
}
