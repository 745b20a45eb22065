package usecase

import (
	"github.com/jhoicas/Mercado-api/internal/application/dto"
	"github.com/jhoicas/Mercado-api/internal/domain/repository"
)

func listOptions(q dto.ListQuery, sortable []string) (repository.ListOptions, error) {
	sort, err := repository.ParseSort(q.OrderBy, sortable)
	if err != nil {
		return repository.ListOptions{}, err
	}
	return repository.ListOptions{Search: q.Search, Sort: sort}, nil
}
