// Package videoio reads video files directly. The sequential reader and
// prober are backed by OpenCV video capture (gocv); frame extraction to
// image files shells out to ffmpeg.
//
// The reader's policy on damaged streams follows the dataset pipeline's
// needs: a failed read ends accumulation and the caller receives whatever
// frames were collected, with the truncation made visible on the result
// instead of being conflated with a clean end-of-stream.
package videoio
