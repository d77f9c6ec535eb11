package planner

import "context"

// retryOnce runs attempt with the first prompt and, if reject returns a
// non-empty reason, once more with a prompt strengthened by that reason. Any
// oracle error ends the attempts. The second rejection is final.
func retryOnce(
	ctx context.Context,
	prompt string,
	strengthen func(prompt, reason string) string,
	attempt func(ctx context.Context, prompt string) (string, error),
	reject func(result string) string,
) (string, error) {
	result, err := attempt(ctx, prompt)
	if err != nil {
		return "", err
	}
	reason := reject(result)
	if reason == "" {
		return result, nil
	}

	result, err = attempt(ctx, strengthen(prompt, reason))
	if err != nil {
		return "", err
	}
	if reason := reject(result); reason != "" {
		return "", ErrContentPolicyViolation
	}
	return result, nil
}
