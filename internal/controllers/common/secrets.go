package common

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	operrors "github.com/snapp-incubator/sftpgo-operator/internal/errors"
)

// SecretValue reads one key of a Secret in namespace as UTF-8 text.
func SecretValue(ctx context.Context, c client.Reader, namespace, fieldPath string, sel corev1.SecretKeySelector) (string, error) {
	values, err := SecretValues(ctx, c, namespace, fieldPath, sel.Name, sel.Key)
	if err != nil {
		return "", err
	}
	return values[sel.Key], nil
}

// SecretValues reads the given keys of the named Secret. Every key must be present.
func SecretValues(ctx context.Context, c client.Reader, namespace, fieldPath, name string, keys ...string) (map[string]string, error) {
	secret := &corev1.Secret{}
	if err := c.Get(ctx, types.NamespacedName{Namespace: namespace, Name: name}, secret); err != nil {
		return nil, operrors.NewClusterAPIError(fmt.Sprintf("get secret %s/%s", namespace, name), err)
	}

	values := make(map[string]string, len(keys))
	for _, key := range keys {
		raw, ok := secret.Data[key]
		if !ok {
			if s, found := secret.StringData[key]; found {
				raw, ok = []byte(s), true
			}
		}
		if !ok {
			return nil, operrors.NewUserInputError(fieldPath, fmt.Sprintf("secret %q has no key %q", name, key))
		}
		if !utf8.Valid(raw) {
			return nil, operrors.NewDecodingError(fmt.Sprintf("secret %q key %q", name, key), errors.New("value is not valid UTF-8"))
		}
		values[key] = string(raw)
	}
	return values, nil
}
