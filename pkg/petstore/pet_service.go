package petstore

import (
	"context"

	"github.com/samvad-hq/petstore-client/internal/domain"
)

// UpdatePetForm holds the optional fields of updatePetWithForm. Nil fields are not sent.
type UpdatePetForm struct {
	Name   *string
	Status *string
}

// UploadFileForm holds the optional fields of uploadFile. Nil fields are not sent.
type UploadFileForm struct {
	AdditionalMetadata *string
	File               *FileData
}

// AddPet adds a new pet to the store.
func (s *PetService) AddPet(ctx context.Context, pet *domain.Pet, opts ...CallOption) (domain.Pet, error) {
	return bodyOf(s.AddPetWithResponse(ctx, pet, opts...))
}

func (s *PetService) AddPetWithResponse(ctx context.Context, pet *domain.Pet, opts ...CallOption) (*Response[domain.Pet], error) {
	return call[domain.Pet](ctx, s, OpAddPet, Args{"pet": pet}, opts...)
}

// DeletePet deletes a pet. apiKey is sent as the api_key header when non-empty.
func (s *PetService) DeletePet(ctx context.Context, petID int64, apiKey string, opts ...CallOption) (domain.ApiResponse, error) {
	return bodyOf(s.DeletePetWithResponse(ctx, petID, apiKey, opts...))
}

func (s *PetService) DeletePetWithResponse(ctx context.Context, petID int64, apiKey string, opts ...CallOption) (*Response[domain.ApiResponse], error) {
	return call[domain.ApiResponse](ctx, s, OpDeletePet, Args{"petId": petID, "api_key": apiKey}, opts...)
}

// FindPetsByStatus finds pets whose status is any of the given values.
func (s *PetService) FindPetsByStatus(ctx context.Context, status []domain.PetStatus, opts ...CallOption) (domain.Pets, error) {
	return bodyOf(s.FindPetsByStatusWithResponse(ctx, status, opts...))
}

func (s *PetService) FindPetsByStatusWithResponse(ctx context.Context, status []domain.PetStatus, opts ...CallOption) (*Response[domain.Pets], error) {
	return call[domain.Pets](ctx, s, OpFindPetsByStatus, Args{"status": status}, opts...)
}

// FindPetsByTags finds pets carrying any of the given tags.
func (s *PetService) FindPetsByTags(ctx context.Context, tags []string, opts ...CallOption) (domain.Pets, error) {
	return bodyOf(s.FindPetsByTagsWithResponse(ctx, tags, opts...))
}

func (s *PetService) FindPetsByTagsWithResponse(ctx context.Context, tags []string, opts ...CallOption) (*Response[domain.Pets], error) {
	return call[domain.Pets](ctx, s, OpFindPetsByTags, Args{"tags": tags}, opts...)
}

// GetPetByID returns a single pet. It authenticates with the api_key key.
func (s *PetService) GetPetByID(ctx context.Context, petID int64, opts ...CallOption) (domain.Pet, error) {
	return bodyOf(s.GetPetByIDWithResponse(ctx, petID, opts...))
}

func (s *PetService) GetPetByIDWithResponse(ctx context.Context, petID int64, opts ...CallOption) (*Response[domain.Pet], error) {
	return call[domain.Pet](ctx, s, OpGetPetByID, Args{"petId": petID}, opts...)
}

// UpdatePet replaces an existing pet.
func (s *PetService) UpdatePet(ctx context.Context, pet *domain.Pet, opts ...CallOption) (domain.Pet, error) {
	return bodyOf(s.UpdatePetWithResponse(ctx, pet, opts...))
}

func (s *PetService) UpdatePetWithResponse(ctx context.Context, pet *domain.Pet, opts ...CallOption) (*Response[domain.Pet], error) {
	return call[domain.Pet](ctx, s, OpUpdatePet, Args{"pet": pet}, opts...)
}

// UpdatePetWithForm updates name and/or status through a url-encoded form.
func (s *PetService) UpdatePetWithForm(ctx context.Context, petID int64, form UpdatePetForm, opts ...CallOption) (domain.ApiResponse, error) {
	return bodyOf(s.UpdatePetWithFormWithResponse(ctx, petID, form, opts...))
}

func (s *PetService) UpdatePetWithFormWithResponse(ctx context.Context, petID int64, form UpdatePetForm, opts ...CallOption) (*Response[domain.ApiResponse], error) {
	args := Args{"petId": petID, "name": form.Name, "status": form.Status}
	return call[domain.ApiResponse](ctx, s, OpUpdatePetWithForm, args, opts...)
}

// UploadFile uploads an image for a pet as multipart/form-data.
func (s *PetService) UploadFile(ctx context.Context, petID int64, form UploadFileForm, opts ...CallOption) (domain.ApiResponse, error) {
	return bodyOf(s.UploadFileWithResponse(ctx, petID, form, opts...))
}

func (s *PetService) UploadFileWithResponse(ctx context.Context, petID int64, form UploadFileForm, opts ...CallOption) (*Response[domain.ApiResponse], error) {
	args := Args{"petId": petID, "additionalMetadata": form.AdditionalMetadata, "file": form.File}
	return call[domain.ApiResponse](ctx, s, OpUploadFile, args, opts...)
}
