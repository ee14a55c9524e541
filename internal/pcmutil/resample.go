/*
NAME
  resample.go

DESCRIPTION
  resample.go normalises mono/stereo PCM at an integer multiple of the
  target sample rate down to the mono 44100Hz stream the AFSK
  demodulator expects, before the frame ever reaches codec/afsk. Adapted from
  codec/pcm.Resample and codec/pcm.StereoToMono in the wider codebase,
  narrowed from that package's generic BufferFormat/S16_LE/S32_LE
  abstraction to the one shape this codec's container layer ever needs:
  signed 16-bit samples.

LICENSE
  Released under the MIT License as part of the aprsafsk project.
*/

package pcmutil

import "github.com/pkg/errors"

// DownmixStereo averages the left and right channels of an interleaved
// stereo []int16 buffer into a mono buffer half its length.
func DownmixStereo(stereo []int16) []int16 {
	mono := make([]int16, len(stereo)/2)
	for i := range mono {
		l, r := int(stereo[2*i]), int(stereo[2*i+1])
		mono[i] = int16((l + r) / 2)
	}
	return mono
}

// Resample downsamples mono PCM from rate Hz to target Hz by averaging
// each block of samples, the same decimation approach as
// codec/pcm.Resample. rate must be an integer multiple of target; other
// ratios (including upsampling) are not supported since no caller of
// this codec needs them.
func Resample(mono []int16, rate, target int) ([]int16, error) {
	if rate == target {
		return mono, nil
	}
	if rate <= 0 || target <= 0 {
		return nil, errors.Errorf("invalid sample rate(s): %d -> %d", rate, target)
	}
	if rate%target != 0 {
		return nil, errors.Errorf("unsupported rate ratio %d:%d, rate must be a multiple of target", rate, target)
	}

	factor := rate / target
	outLen := len(mono) / factor
	out := make([]int16, outLen)
	for i := 0; i < outLen; i++ {
		sum := 0
		for j := 0; j < factor; j++ {
			sum += int(mono[i*factor+j])
		}
		out[i] = int16(sum / factor)
	}
	return out, nil
}
