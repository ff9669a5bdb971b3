package bind

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "skillproof/internal/platform/errors"
)

type scoreReq struct {
	Skill  string `json:"skill" validate:"notblank,max=8"`
	Weight int    `json:"weight" validate:"min=1"`
	Hidden string `json:"-"`
}

func post(body string) *http.Request {
	if body == "" {
		return httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	}
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestParseJSON(t *testing.T) {
	cases := []struct {
		name  string
		req   *http.Request
		opts  []JSONOptions
		code  perr.ErrorCode
		ok    bool
		field string
		msg   string
	}{
		{name: "valid", req: post(`{"skill":"go","weight":2}`), ok: true},
		{name: "empty post", req: post(""), code: perr.ErrorCodeJSON},
		{name: "empty get tolerated", req: httptest.NewRequest(http.MethodGet, "/", http.NoBody), ok: true},
		{name: "empty allowed", req: post(""), opts: []JSONOptions{{AllowEmptyBody: true, MaxBytes: 64}}, ok: true},
		{name: "broken", req: post(`{"skill":`), code: perr.ErrorCodeJSON},
		{name: "unknown field", req: post(`{"skill":"go","weight":1,"x":1}`), code: perr.ErrorCodeJSON},
		{name: "unknown allowed", req: post(`{"skill":"go","weight":1,"x":1}`), opts: []JSONOptions{{}}, ok: true},
		{name: "trailing data", req: post(`{"skill":"go","weight":1} {}`), code: perr.ErrorCodeJSON},
		{name: "over limit", req: post(`{"skill":"go","weight":1}`), opts: []JSONOptions{{MaxBytes: 5}}, code: perr.ErrorCodeJSON},
		{name: "blank skill", req: post(`{"skill":"   ","weight":1}`), code: perr.ErrorCodeValidation, field: "skill", msg: "skill must not be blank"},
		{name: "long skill", req: post(`{"skill":"typescript","weight":1}`), code: perr.ErrorCodeValidation, field: "skill", msg: "skill must be at most 8"},
		{name: "low weight", req: post(`{"skill":"go","weight":0}`), code: perr.ErrorCodeValidation, field: "weight", msg: "weight must be at least 1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseJSON[scoreReq](c.req, c.opts...)
			if c.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if perr.CodeOf(err) != c.code {
				t.Fatalf("code %v want %v (%v)", perr.CodeOf(err), c.code, err)
			}
			if c.msg != "" && err.Error() != c.msg {
				t.Fatalf("message %q want %q", err.Error(), c.msg)
			}
			if c.field != "" && perr.WireFrom(err).Field != c.field {
				t.Fatalf("field %q want %q", perr.WireFrom(err).Field, c.field)
			}
		})
	}
}

func TestParseJSON_TrailingSeam(t *testing.T) {
	orig := jsonMore
	t.Cleanup(func() { jsonMore = orig })
	jsonMore = func(*json.Decoder) bool { return true }

	if _, err := ParseJSON[scoreReq](post(`{"skill":"go","weight":1}`)); perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error from seam, got %v", err)
	}
}

func TestValidator_UsesJSONNames(t *testing.T) {
	type tagged struct {
		Skill string `json:"skill_id,omitempty" validate:"required"`
		Plain string `validate:"required"`
	}
	err := Get().Validator.Struct(tagged{})
	if err == nil {
		t.Fatal("expected validation errors")
	}
	field, _ := ValidationFieldAndMessage(err)
	if field != "skill_id" {
		t.Fatalf("first field %q want skill_id", field)
	}
}

func TestValidationFieldAndMessage_Passthrough(t *testing.T) {
	if f, m := ValidationFieldAndMessage(nil); f != "" || m != "" {
		t.Fatalf("nil gave %q %q", f, m)
	}
	if f, m := ValidationFieldAndMessage(errors.New("boom")); f != "" || m != "boom" {
		t.Fatalf("plain error gave %q %q", f, m)
	}
}
