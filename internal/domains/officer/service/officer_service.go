package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"shopping-backend/internal/domains/officer/model"
	"shopping-backend/internal/domains/officer/repository"
)

// ServiceInterface is the officer business logic contract.
type ServiceInterface interface {
	GetOfficer(ctx context.Context, id int64) (*model.OfficerResponse, error)
	ListOfficers(ctx context.Context) ([]model.OfficerResponse, error)
	CreateOfficer(ctx context.Context, req model.OfficerRequest) (*model.OfficerResponse, error)
	DeleteOfficer(ctx context.Context, id int64) error
}

type OfficerService struct {
	repo repository.RepositoryInterface
}

func NewService(repo repository.RepositoryInterface) ServiceInterface {
	return &OfficerService{repo: repo}
}

func (s *OfficerService) GetOfficer(ctx context.Context, id int64) (*model.OfficerResponse, error) {
	officer, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, model.NewOfficerNotFoundError(id)
	}

	res := officer.ToResponse()
	return &res, nil
}

func (s *OfficerService) ListOfficers(ctx context.Context) ([]model.OfficerResponse, error) {
	officers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return model.ToResponseList(officers), nil
}

func (s *OfficerService) CreateOfficer(ctx context.Context, req model.OfficerRequest) (*model.OfficerResponse, error) {
	officer, err := s.repo.Save(ctx, req.ToEntity())
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("officer_id", officer.ID).
		Str("rank", string(officer.Rank)).
		Msg("Officer created")

	res := officer.ToResponse()
	return &res, nil
}

func (s *OfficerService) DeleteOfficer(ctx context.Context, id int64) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return model.NewOfficerNotFoundError(id)
	}

	return s.repo.Delete(ctx, model.Officer{ID: id})
}
