package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

type soundPlayer interface {
	PlayClear(cells int)
	PlayGameOver()
	Close()
}

type speakerSound struct{}

func newSpeakerSound() (soundPlayer, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}

	return &speakerSound{}, nil
}

// PlayClear plays a short tone that gets higher with the number of cleared cells.
func (that *speakerSound) PlayClear(cells int) {
	freq := 660 + 40*min(cells, 12)
	that.tone(freq, 80*time.Millisecond)
}

func (that *speakerSound) PlayGameOver() {
	that.tone(220, 400*time.Millisecond)
}

func (that *speakerSound) Close() {
	speaker.Close()
}

func (that *speakerSound) tone(freq int, duration time.Duration) {
	sine, err := generators.SineTone(sampleRate, float64(freq))
	if err != nil {
		return
	}

	speaker.Play(beep.Take(sampleRate.N(duration), sine))
}

type silentSound struct{}

func (silentSound) PlayClear(int) {}
func (silentSound) PlayGameOver() {}
func (silentSound) Close()        {}
