package repository

import "testing"

func TestNewOrderScope(t *testing.T) {
	cases := []struct {
		name       string
		userID     uint64
		staff      bool
		userFilter string
		want       OrderScope
	}{
		{
			name:   "customer sees own orders only",
			userID: 7,
			want:   OrderScope{UserID: 7, Staff: false, UserFilter: ""},
		},
		{
			name:       "customer filter is discarded",
			userID:     7,
			userFilter: "someoneelse@example.com",
			want:       OrderScope{UserID: 7, Staff: false, UserFilter: ""},
		},
		{
			name:   "staff without filter",
			userID: 3,
			staff:  true,
			want:   OrderScope{UserID: 3, Staff: true, UserFilter: ""},
		},
		{
			name:       "staff filter is kept and trimmed",
			userID:     3,
			staff:      true,
			userFilter: "  alice@example.com ",
			want:       OrderScope{UserID: 3, Staff: true, UserFilter: "alice@example.com"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewOrderScope(tc.userID, tc.staff, tc.userFilter)
			if got != tc.want {
				t.Errorf("NewOrderScope(%d, %v, %q) = %+v, want %+v",
					tc.userID, tc.staff, tc.userFilter, got, tc.want)
			}
		})
	}
}
