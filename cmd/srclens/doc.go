// Srclens reviews a single C++ source file.
//
// It combines up to three analyzers: a remote Hugging Face model (when
// HUGGINGFACE_API_KEY is set), a local Ollama model, and a deterministic
// pattern scanner that always runs. The combined report is printed and saved
// as <file>.ai_analysis.md.
//
// Usage:
//
//	srclens main.cpp                  # all analyzers
//	srclens --no-remote --no-local a.h  # pattern scanner only
//	srclens rules                     # list pattern rules in evaluation order
//	srclens config init               # write a default config file
package main
