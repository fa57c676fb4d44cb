package model

type CreateFolderDTO struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type UpdateFolderDTO struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

func (dto UpdateFolderDTO) IsEmpty() bool {
	return dto.Name == nil && dto.Color == nil
}
