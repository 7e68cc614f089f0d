package httpwire

import (
	"errors"
	"strconv"
	"testing"
)

func TestParseSimpleGET(t *testing.T) {
	raw := "GET /index.html HTTP/1.1\r\nHost: example.com\r\n\r\n"
	req, err := Parse([]byte(raw), false)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if req.Method != "GET" || req.Target != "/index.html" || req.Version != "HTTP/1.1" {
		t.Errorf("got %+v", req)
	}
	if got := req.Header.Get("host"); got != "example.com" {
		t.Errorf("Host header = %q", got)
	}
}

func TestParsePOSTWithBody(t *testing.T) {
	body := `{"a":1}`
	raw := "POST /upload HTTP/1.1\r\nHost: example.com\r\nContent-Length: " + strconv.Itoa(len(body)) + "\r\n\r\n" + body
	req, err := Parse([]byte(raw), false)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if string(req.Body) != body {
		t.Errorf("Body = %q, want %q", req.Body, body)
	}
}

func TestParseLowercasesMethodUpper(t *testing.T) {
	raw := "get / HTTP/1.1\r\nHost: a\r\n\r\n"
	req, err := Parse([]byte(raw), false)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if req.Method != "GET" {
		t.Errorf("Method = %q, want GET", req.Method)
	}
}

func TestParseRejectsUnsupportedVersion(t *testing.T) {
	raw := "GET / HTTP/2.0\r\nHost: a\r\n\r\n"
	_, err := Parse([]byte(raw), false)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("err = %v, want ErrUnsupportedVersion", err)
	}
}

func TestParseRejectsTransferEncoding(t *testing.T) {
	raw := "POST /x HTTP/1.1\r\nHost: a\r\nTransfer-Encoding: chunked\r\n\r\n"
	_, err := Parse([]byte(raw), false)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}

func TestParseRejectsMalformedRequestLine(t *testing.T) {
	raw := "NOTAREQUEST\r\n\r\n"
	_, err := Parse([]byte(raw), false)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}

func TestParseIncompleteHeadNotAtCapIsMalformed(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nHost: a"
	_, err := Parse([]byte(raw), false)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}

func TestParseIncompleteHeadAtCapIsTooLarge(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nHost: a"
	_, err := Parse([]byte(raw), true)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("err = %v, want ErrTooLarge", err)
	}
}

func TestParseShortBodyNotAtCapIsMalformed(t *testing.T) {
	raw := "POST /x HTTP/1.1\r\nHost: a\r\nContent-Length: 10\r\n\r\nshort"
	_, err := Parse([]byte(raw), false)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}

func TestParseShortBodyAtCapIsTooLarge(t *testing.T) {
	raw := "POST /x HTTP/1.1\r\nHost: a\r\nContent-Length: 10\r\n\r\nshort"
	_, err := Parse([]byte(raw), true)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("err = %v, want ErrTooLarge", err)
	}
}

func TestParseRejectsNegativeContentLength(t *testing.T) {
	raw := "POST /x HTTP/1.1\r\nHost: a\r\nContent-Length: -1\r\n\r\n"
	_, err := Parse([]byte(raw), false)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}

func TestParseRejectsHeaderLineWithoutColon(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nHost a\r\n\r\n"
	_, err := Parse([]byte(raw), false)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}
