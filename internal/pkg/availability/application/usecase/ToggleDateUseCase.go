package usecase

import "context"

// ToggleDateInput sets the mark for (UserName, Date) to Selected.
type ToggleDateInput struct {
	UserName string
	Date     string
	Selected bool
}

// ToggleDateUseCase dispatches to add or remove.
type ToggleDateUseCase struct {
	Add    *AddDateUseCase
	Remove *RemoveDateUseCase
}

func NewToggleDateUseCase(add *AddDateUseCase, remove *RemoveDateUseCase) *ToggleDateUseCase {
	return &ToggleDateUseCase{Add: add, Remove: remove}
}

func (uc *ToggleDateUseCase) Execute(ctx context.Context, in ToggleDateInput) (WriteResult, error) {
	if in.Selected {
		return uc.Add.Execute(ctx, AddDateInput{UserName: in.UserName, Date: in.Date})
	}
	return uc.Remove.Execute(ctx, RemoveDateInput{UserName: in.UserName, Date: in.Date})
}
