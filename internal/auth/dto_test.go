// AngelaMos | 2026
// dto_test.go

package auth

import "testing"

func TestRegisterRequestValidation(t *testing.T) {
	t.Parallel()

	v := NewValidator()

	cases := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{
			name: "valid",
			req: RegisterRequest{
				Username: "reader",
				Email:    "reader@example.com",
				Password: "Sup3rSecret!",
			},
		},
		{
			name: "short username",
			req: RegisterRequest{
				Username: "ab",
				Email:    "reader@example.com",
				Password: "Sup3rSecret!",
			},
			wantErr: true,
		},
		{
			name: "bad email",
			req: RegisterRequest{
				Username: "reader",
				Email:    "not-an-email",
				Password: "Sup3rSecret!",
			},
			wantErr: true,
		},
		{
			name: "password too short",
			req: RegisterRequest{
				Username: "reader",
				Email:    "reader@example.com",
				Password: "Ab1!",
			},
			wantErr: true,
		},
		{
			name: "password missing upper case",
			req: RegisterRequest{
				Username: "reader",
				Email:    "reader@example.com",
				Password: "sup3rsecret!",
			},
			wantErr: true,
		},
		{
			name: "password missing digit",
			req: RegisterRequest{
				Username: "reader",
				Email:    "reader@example.com",
				Password: "SuperSecret!",
			},
			wantErr: true,
		},
		{
			name: "password missing special",
			req: RegisterRequest{
				Username: "reader",
				Email:    "reader@example.com",
				Password: "Sup3rSecret",
			},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := v.Struct(tc.req)
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error, got none")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}
