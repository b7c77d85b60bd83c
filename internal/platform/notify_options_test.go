package platform

import (
	"testing"
	"time"
)

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if o.appName() != "Wroomer" {
		t.Fatalf("appName = %q", o.appName())
	}
	if o.timeout() != DefaultTimeout {
		t.Fatalf("timeout = %v", o.timeout())
	}
	o = Options{AppName: "x", Timeout: time.Second}
	if o.appName() != "x" || o.timeout() != time.Second {
		t.Fatalf("overrides ignored: %+v", o)
	}
}
