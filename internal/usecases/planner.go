package usecases

import (
	"github.com/MyCarrier-DevOps/smart-commit/internal/domain"
)

// PlanGroups partitions classified files into commit groups keyed by
// (type, explicit message or none). Groups appear in the order their key was
// first seen; paths keep their input order.
func PlanGroups(files []domain.ClassifiedFile) []domain.CommitGroup {
	index := make(map[domain.GroupKey]int)
	var groups []domain.CommitGroup

	for _, f := range files {
		key := f.Classification.Key()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, domain.CommitGroup{Key: key})
		}
		groups[i].Paths = append(groups[i].Paths, f.File.Path)
	}
	return groups
}
