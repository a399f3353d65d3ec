package contract

import (
	"context"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/contract"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
)

type GetContract struct {
	repo domain.Repository
}

func NewGetContract(repo domain.Repository) *GetContract {
	return &GetContract{repo: repo}
}

func (uc *GetContract) Execute(ctx context.Context, studioID, contractID uint) (*ContractView, error) {
	c, err := uc.repo.Get(ctx, studioID, contractID)
	if err != nil {
		return nil, err
	}
	v := NewContractView(*c)
	return &v, nil
}

type ListContracts struct {
	repo domain.Repository
}

func NewListContracts(repo domain.Repository) *ListContracts {
	return &ListContracts{repo: repo}
}

func (uc *ListContracts) Execute(ctx context.Context, studioID uint, f domain.ListFilter) ([]ContractView, error) {
	if f.Status != "" && !domain.Machine.Valid(domain.Status(f.Status)) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	rows, err := uc.repo.List(ctx, studioID, f)
	if err != nil {
		return nil, err
	}

	out := make([]ContractView, 0, len(rows))
	for _, c := range rows {
		out = append(out, NewContractView(c))
	}
	return out, nil
}
