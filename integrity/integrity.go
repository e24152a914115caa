package integrity

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/hashicorp/go-multierror"
	"github.com/sovereign-lang/sovereign/errz"
)

// Digest returns the hex SHA-256 digest of the canonical serialization of
// content.
func Digest(content any) (string, error) {
	data, err := Canonicalize(content)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Seal wraps content in a hash envelope. Producers (front ends, test
// fixtures) use this to emit documents the loader will accept.
func Seal(content any) (map[string]any, error) {
	digest, err := Digest(content)
	if err != nil {
		return nil, err
	}
	return map[string]any{"hash": digest, "content": content}, nil
}

// Verify recomputes the digest of content and compares it to the stored
// hash. Verification is pure and idempotent: it reads nothing but its
// arguments and may run any number of times.
func Verify(hash string, content any) error {
	computed, err := Digest(content)
	if err != nil {
		return err
	}
	if computed != hash {
		return errz.Newf(errz.Integrity,
			"content hash %s does not match stored hash %s", computed, hash)
	}
	return nil
}

// VerifyProgram checks the hash envelope of a decoded program document
// and of every function body inside it. All mismatches are reported, not
// just the first. No part of an offending subtree is eligible for
// execution afterwards.
func VerifyProgram(doc map[string]any) error {
	var result *multierror.Error
	hash, content, err := unwrap(doc, "program")
	if err != nil {
		return err
	}
	if err := Verify(hash, content); err != nil {
		result = multierror.Append(result, err)
	}
	walkFunctions(content, func(name string, body map[string]any) {
		hash, content, err := unwrap(body, "function "+name)
		if err != nil {
			result = multierror.Append(result, err)
			return
		}
		if err := Verify(hash, content); err != nil {
			result = multierror.Append(result, errz.Newf(errz.Integrity,
				"function %q: %s", name, err.(*errz.Error).Message()))
		}
	})
	return result.ErrorOrNil()
}

func unwrap(envelope map[string]any, what string) (string, any, error) {
	hash, ok := envelope["hash"].(string)
	if !ok {
		return "", nil, errz.Newf(errz.Parse, "%s is missing its hash", what)
	}
	content, ok := envelope["content"]
	if !ok {
		return "", nil, errz.Newf(errz.Parse, "%s is missing its content", what)
	}
	return hash, content, nil
}

// walkFunctions visits every function node in a decoded document and
// yields its hashed body envelope.
func walkFunctions(v any, fn func(name string, body map[string]any)) {
	switch v := v.(type) {
	case map[string]any:
		if kind, _ := v["kind"].(string); kind == "function" {
			name, _ := v["name"].(string)
			if body, ok := v["body"].(map[string]any); ok {
				fn(name, body)
				walkFunctions(body["content"], fn)
				return
			}
		}
		for _, child := range v {
			walkFunctions(child, fn)
		}
	case []any:
		for _, item := range v {
			walkFunctions(item, fn)
		}
	}
}
