package domain

type CreateDrinkInput struct {
	Title  string `validate:"required,max=80"`
	Recipe Recipe `validate:"required,min=1,dive"`
}

// UpdateDrinkInput carries a partial update. Nil fields are left untouched.
type UpdateDrinkInput struct {
	Title  *string
	Recipe *Recipe
}

func (in UpdateDrinkInput) Empty() bool {
	return in.Title == nil && in.Recipe == nil
}
