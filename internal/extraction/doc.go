// Package extraction turns raw symptom descriptions into structured
// intent and symptom data using pattern tables. It is the first pipeline
// stage: pure, I/O-free, and tolerant of empty or garbage input (the
// worst case is a general_inquiry intent with no symptoms, never an
// error).
package extraction
