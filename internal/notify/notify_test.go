package notify

import (
	"testing"
	"time"
)

func TestMemorySinkRetainsInOrder(t *testing.T) {
	sink := NewMemorySink()
	sink.Notify(Notification{Level: LevelSuccess, Message: "first", At: time.Now()})
	sink.Notify(Notification{Level: LevelError, Message: "second", At: time.Now()})

	got := sink.Notifications()
	if len(got) != 2 || got[0].Message != "first" || got[1].Message != "second" {
		t.Fatalf("unexpected notifications: %+v", got)
	}

	got[0].Message = "tampered"
	if fresh := sink.Notifications(); fresh[0].Message != "first" {
		t.Fatal("Notifications must return a copy")
	}

	sink.Reset()
	if len(sink.Notifications()) != 0 {
		t.Fatal("reset must discard retained notifications")
	}
}

func TestTeeSinkFansOut(t *testing.T) {
	a := NewMemorySink()
	b := NewMemorySink()
	tee := TeeSink{a, b}
	tee.Notify(Notification{Level: LevelInfo, Message: "hello", At: time.Now()})

	if len(a.Notifications()) != 1 || len(b.Notifications()) != 1 {
		t.Fatal("tee must deliver to every sink")
	}
}

func TestZapSinkAcceptsNilLogger(t *testing.T) {
	sink := NewZapSink(nil)
	sink.Notify(Notification{Level: LevelSuccess, Message: "ok", At: time.Now()})
}
