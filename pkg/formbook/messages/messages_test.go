package messages

import "testing"

func TestGet(t *testing.T) {
	tests := []struct {
		key      Key
		args     []any
		expected Message
	}{
		{MaxLength, []any{50}, Message{"Too long", "Must be 50 characters or fewer."}},
		{WholeNumber, []any{1, 100}, Message{"Invalid number", "Enter a whole number between 1 and 100."}},
		{InvalidEmail, nil, Message{"Invalid email", "Enter a valid email address, e.g. name@example.org."}},
		{Key("missing"), nil, Message{"Invalid value", "The value entered is not valid."}},
	}

	for _, tt := range tests {
		if result := Get(tt.key, tt.args...); result != tt.expected {
			t.Errorf("Get(%q) = %+v, expected %+v", tt.key, result, tt.expected)
		}
	}
}

func TestCombine(t *testing.T) {
	email := Get(InvalidEmail)
	long := Get(MaxLength, 10)

	result := Combine(email, long, email)
	if result.Title != email.Title {
		t.Errorf("Title = %q, expected %q", result.Title, email.Title)
	}
	expected := email.Body + " " + long.Body
	if result.Body != expected {
		t.Errorf("Body = %q, expected %q", result.Body, expected)
	}

	if single := Combine(long); single != long {
		t.Errorf("Combine(single) = %+v, expected %+v", single, long)
	}
}
