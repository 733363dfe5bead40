package kube

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// KubeClient reads secrets from a Kubernetes cluster the same way kubectl would.
type KubeClient struct {
	Clientset kubernetes.Interface
	logger    log.FieldLogger
}

// New returns a KubeClient for the given kubeconfig. An empty location falls back
// to the default loading rules (KUBECONFIG, ~/.kube/config, in-cluster).
func New(configLocation string, logger log.FieldLogger) (*KubeClient, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if configLocation != "" {
		rules.ExplicitPath = configLocation
	}

	config, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{}).ClientConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load kubeconfig")
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create kubernetes clientset")
	}

	return NewFromClientset(clientset, logger), nil
}

// NewFromClientset wraps an existing clientset.
func NewFromClientset(clientset kubernetes.Interface, logger log.FieldLogger) *KubeClient {
	return &KubeClient{
		Clientset: clientset,
		logger:    logger,
	}
}

// GetSecret fetches a single secret.
func (kc *KubeClient) GetSecret(ctx context.Context, namespace, name string) (*corev1.Secret, error) {
	kc.logger.WithFields(log.Fields{
		"namespace": namespace,
		"secret":    name,
	}).Debug("Fetching secret")

	secret, err := kc.Clientset.CoreV1().Secrets(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get secret %s/%s", namespace, name)
	}

	return secret, nil
}
