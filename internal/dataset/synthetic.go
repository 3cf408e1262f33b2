package dataset

import (
	"fmt"
	"math/rand"
)

// Synthetic creates a small separable dataset for smoke runs without data
// files.
//
// Each class c lights up its own band of features at 0.8 and every sample
// gets uniform noise in [0, 0.2) elsewhere. Samples are interleaved by
// class, so any prefix split keeps all classes represented.
//
// Parameters:
//   - rng: Random source for the noise
//   - numClasses: Number of classes (1..256)
//   - perClass: Samples per class
//   - numFeatures: Feature vector length, at least numClasses
func Synthetic(rng *rand.Rand, numClasses, perClass, numFeatures int) *Dataset {
	if numClasses <= 0 || numClasses > 256 || perClass < 0 || numFeatures < numClasses {
		panic(fmt.Sprintf("dataset.Synthetic: invalid shape classes=%d perClass=%d features=%d",
			numClasses, perClass, numFeatures))
	}

	band := numFeatures / numClasses
	n := numClasses * perClass
	images := make([]float32, n*numFeatures)
	labels := make([]uint8, n)

	for k := 0; k < n; k++ {
		class := k % numClasses
		labels[k] = uint8(class)
		img := images[k*numFeatures : (k+1)*numFeatures]
		for i := range img {
			img[i] = rng.Float32() * 0.2
		}
		for i := class * band; i < (class+1)*band; i++ {
			img[i] = 0.8
		}
	}
	return New(images, labels, numFeatures)
}
