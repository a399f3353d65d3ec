package catalog

import (
	"strings"

	"github.com/BruksfildServices01/studio-manager/internal/domain/contract"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type Kind string

const (
	KindService Kind = "service"
	KindPackage Kind = "package"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindService, nil
	case KindService, KindPackage:
		return k, nil
	}
	return "", httperr.ErrBusiness("invalid_kind")
}

type Stats struct {
	Active       int   `json:"active"`
	Completed    int   `json:"completed"`
	TotalRevenue int64 `json:"total_revenue"`
}

type ItemWithStats struct {
	models.CatalogItem
	Stats Stats `json:"stats"`
}

// ComputeStats derives usage of each catalog item from contracts. A package
// counts through Contract.PackageID, a service through additional lines.
// Revenue of a package is the paid amount minus what the extra lines account
// for; revenue of a service is its line totals on non-cancelled contracts.
func ComputeStats(items []models.CatalogItem, contracts []models.Contract) []ItemWithStats {
	stats := make(map[uint]*Stats, len(items))
	for _, it := range items {
		stats[it.ID] = &Stats{}
	}

	bump := func(id uint, st contract.Status, revenue int64) {
		s, ok := stats[id]
		if !ok {
			return
		}
		switch st {
		case contract.StatusCompleted:
			s.Completed++
		case contract.StatusCancelled:
			return
		default:
			s.Active++
		}
		s.TotalRevenue += revenue
	}

	for _, c := range contracts {
		st := contract.Status(c.Status)

		var extras int64
		seen := map[uint]bool{}
		for _, line := range c.AdditionalServices {
			extras += line.LineTotal()
			if seen[line.ServiceID] {
				if s, ok := stats[line.ServiceID]; ok && st != contract.StatusCancelled {
					s.TotalRevenue += line.LineTotal()
				}
				continue
			}
			seen[line.ServiceID] = true
			bump(line.ServiceID, st, line.LineTotal())
		}

		pkgRevenue := c.PaidAmount - extras
		if pkgRevenue < 0 {
			pkgRevenue = 0
		}
		bump(c.PackageID, st, pkgRevenue)
	}

	out := make([]ItemWithStats, 0, len(items))
	for _, it := range items {
		out = append(out, ItemWithStats{CatalogItem: it, Stats: *stats[it.ID]})
	}
	return out
}
