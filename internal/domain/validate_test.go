package domain

import (
	"errors"
	"reflect"
	"testing"

	"github.com/radhe-vastra/storefront-backend/pkg/e"
)

func validInput() *ProductInput {
	return &ProductInput{
		Title:       "Tee",
		Price:       49900,
		Description: "Classic tee",
		Sizes:       []string{"S", "M"},
		Image:       "data:image/png;base64,xyz",
	}
}

func TestValidateOK(t *testing.T) {
	if err := validInput().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ProductInput)
		want   error
	}{
		{"empty title", func(in *ProductInput) { in.Title = "" }, e.ErrTitleRequired},
		{"negative price", func(in *ProductInput) { in.Price = -1 }, e.ErrInvalidPrice},
		{"empty description", func(in *ProductInput) { in.Description = "" }, e.ErrDescriptionRequired},
		{"no sizes", func(in *ProductInput) { in.Sizes = nil }, e.ErrNoSizes},
		{"no image", func(in *ProductInput) { in.Image = "" }, e.ErrNoImage},
	}

	for _, tc := range cases {
		in := validInput()
		tc.mutate(in)
		if err := in.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: want %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestNormalizeDedupesSizesKeepingOrder(t *testing.T) {
	in := validInput()
	in.Sizes = []string{"M", " S ", "M", "", "XL", "S"}
	in.Normalize()
	if !reflect.DeepEqual(in.Sizes, []string{"M", "S", "XL"}) {
		t.Fatalf("unexpected sizes: %v", in.Sizes)
	}
}

func TestNormalizeThenValidateEmptySizes(t *testing.T) {
	in := validInput()
	in.Sizes = []string{" ", ""}
	in.Normalize()
	if err := in.Validate(); !errors.Is(err, e.ErrNoSizes) {
		t.Fatalf("want ErrNoSizes, got %v", err)
	}
}
