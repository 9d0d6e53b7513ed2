package cas

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const successXML = `<cas:serviceResponse xmlns:cas="http://www.yale.edu/tp/cas">
  <cas:authenticationSuccess>
    <cas:user>jdoe</cas:user>
  </cas:authenticationSuccess>
</cas:serviceResponse>`

const failureXML = `<cas:serviceResponse xmlns:cas="http://www.yale.edu/tp/cas">
  <cas:authenticationFailure code="INVALID_TICKET">
    Ticket ST-12345 not recognized
  </cas:authenticationFailure>
</cas:serviceResponse>`

func TestParseValidateResponse_Success(t *testing.T) {
	user, err := ParseValidateResponse([]byte(successXML))
	if err != nil {
		t.Fatalf("ParseValidateResponse() failed: %v", err)
	}
	if user != "jdoe" {
		t.Errorf("Expected user jdoe, got %s", user)
	}
}

func TestParseValidateResponse_Failure(t *testing.T) {
	_, err := ParseValidateResponse([]byte(failureXML))
	if err == nil {
		t.Fatal("Expected error for authentication failure response")
	}
	if !strings.Contains(err.Error(), "INVALID_TICKET") {
		t.Errorf("Expected failure code in error, got %v", err)
	}
}

func TestParseValidateResponse_Garbage(t *testing.T) {
	_, err := ParseValidateResponse([]byte("not xml at all"))
	if err == nil {
		t.Error("Expected error for malformed response")
	}
}

func TestValidateTicket(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/serviceValidate" {
			t.Errorf("Expected /serviceValidate path, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("ticket") != "ST-12345" {
			t.Errorf("Expected ticket ST-12345, got %s", r.URL.Query().Get("ticket"))
		}
		if r.URL.Query().Get("service") == "" {
			t.Error("Expected service parameter to be set")
		}
		w.Write([]byte(successXML))
	}))
	defer server.Close()

	client := NewClient(server.URL, "https://swdb.example.org/caslogin", 2*time.Second)

	user, err := client.ValidateTicket(context.Background(), "ST-12345")
	if err != nil {
		t.Fatalf("ValidateTicket() failed: %v", err)
	}
	if user != "jdoe" {
		t.Errorf("Expected user jdoe, got %s", user)
	}
}

func TestValidateTicket_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(failureXML))
	}))
	defer server.Close()

	client := NewClient(server.URL, "https://swdb.example.org/caslogin", 2*time.Second)

	_, err := client.ValidateTicket(context.Background(), "ST-bogus")
	if err == nil {
		t.Error("Expected error for rejected ticket")
	}
}

func TestValidateTicket_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "https://swdb.example.org/caslogin", 2*time.Second)

	_, err := client.ValidateTicket(context.Background(), "ST-12345")
	if err == nil {
		t.Error("Expected error for upstream server error")
	}
}

func TestLoginURL(t *testing.T) {
	client := NewClient("https://auth.example.org/cas", "https://swdb.example.org/caslogin", time.Second)

	got := client.LoginURL()
	want := "https://auth.example.org/cas/login?service=https%3A%2F%2Fswdb.example.org%2Fcaslogin"
	if got != want {
		t.Errorf("LoginURL() = %s, want %s", got, want)
	}
}
