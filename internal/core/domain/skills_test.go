package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSkills(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "finds keywords in pattern order",
			text: "Looking for a Python developer with SQL and Docker experience",
			want: []string{"Python", "SQL", "Docker"},
		},
		{
			name: "case-insensitive",
			text: "experience with MACHINE LEARNING and fastapi",
			want: []string{"MACHINE LEARNING", "fastapi"},
		},
		{
			name: "java does not fire inside javascript",
			text: "strong JavaScript skills",
			want: []string{"JavaScript"},
		},
		{
			name: "golang variant",
			text: "backend services in Golang",
			want: []string{"Golang"},
		},
		{
			name: "duplicates collapse to one hit",
			text: "Python, more Python, and even more Python",
			want: []string{"Python"},
		},
		{
			name: "no keywords",
			text: "pastry chef wanted for artisan bakery",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSkills(tt.text))
		})
	}
}
