package main

import (
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// The open audio device, zero when there is none.
	///
	AudioDevice sdl.AudioDeviceID

	/// Samples queued per video frame.
	///
	FrameSamples int
)

/// InitAudio opens an audio device for the CHIP-8 beeper.
///
func InitAudio() error {
	FrameSamples = Session.SampleRate() / 60

	spec := &sdl.AudioSpec{
		Freq:     int32(Session.SampleRate()),
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  512,
	}

	var actual sdl.AudioSpec
	var err error

	// open the device and start playing it
	if AudioDevice, err = sdl.OpenAudioDevice("", false, spec, &actual, 0); err != nil {
		AudioDevice = 0
		return err
	}

	sdl.PauseAudioDevice(AudioDevice, false)

	return nil
}

/// QueueAudio feeds one frame of the tone to the device. Generation runs
/// even without a device so a recording stays in step.
///
func QueueAudio() {
	if AudioDevice == 0 {
		Session.Beep(FrameSamples)
		return
	}

	// don't let latency build up
	if sdl.GetQueuedAudioSize(AudioDevice) > uint32(FrameSamples*4) {
		return
	}

	if err := sdl.QueueAudio(AudioDevice, Session.Beep(FrameSamples)); err != nil {
		Session.Log.WithError(err).Warn("queueing audio")
	}
}

/// CloseAudio closes the audio device.
///
func CloseAudio() {
	if AudioDevice != 0 {
		sdl.ClearQueuedAudio(AudioDevice)
		sdl.CloseAudioDevice(AudioDevice)
		AudioDevice = 0
	}
}
