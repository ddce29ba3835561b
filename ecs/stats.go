package ecs

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
}

// ArchetypeStats describes one archetype in StorageStats.
type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// CollectStats gathers storage statistics in archetype creation order.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		ArchetypeCount:     len(s.order),
		SingletonCount:     len(s.singletonOrder),
		ArchetypeBreakdown: make([]ArchetypeStats, 0, len(s.order)),
		SingletonTypes:     make([]string, 0, len(s.singletonOrder)),
	}

	for _, archetype := range s.order {
		names := make([]string, len(archetype.types))
		for i, typ := range archetype.types {
			names[i] = typ.String()
		}
		count := archetype.Len()
		stats.TotalEntityCount += count
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             archetype.id,
			ComponentTypes: names,
			EntityCount:    count,
		})
	}

	for _, entry := range s.singletonOrder {
		stats.SingletonTypes = append(stats.SingletonTypes, entry.typ.String())
	}

	return stats
}
