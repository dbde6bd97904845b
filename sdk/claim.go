package sdk

import (
	"fmt"

	"k8s.io/apimachinery/pkg/api/resource"
	"sigs.k8s.io/yaml"
)

type ClaimPhase string

var (
	PendingPhase ClaimPhase = "Pending"
	BoundPhase   ClaimPhase = "Bound"
	LostPhase    ClaimPhase = "Lost"

	// AbsentPhase is not a platform phase; it is reported when no claim
	// with the given name exists.
	AbsentPhase ClaimPhase = ""
)

var accessModes = map[string]struct{}{
	"ReadWriteOnce": {},
	"ReadOnlyMany":  {},
	"ReadWriteMany": {},
}

// Claim describes the persistent volume claim the bootstrap sequence owns.
type Claim struct {
	Name       string
	Capacity   string
	AccessMode string
}

func (c Claim) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("claim name is required")
	}

	if _, err := resource.ParseQuantity(c.Capacity); err != nil {
		return fmt.Errorf("invalid claim capacity %q: %w", c.Capacity, err)
	}

	if _, fnd := accessModes[c.AccessMode]; !fnd {
		return fmt.Errorf("unknown access mode %q", c.AccessMode)
	}

	return nil
}

// Render produces the declarative PersistentVolumeClaim manifest submitted
// to the platform.
func (c Claim) Render() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	m := claimManifest{
		APIVersion: "v1",
		Kind:       "PersistentVolumeClaim",
		Metadata:   metadata{Name: c.Name},
		Spec: claimSpec{
			AccessModes: []string{c.AccessMode},
			Resources: claimResources{
				Requests: map[string]string{"storage": c.Capacity},
			},
		},
	}

	out, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("unable to render claim manifest: %w", err)
	}

	return out, nil
}

type claimManifest struct {
	APIVersion string    `json:"apiVersion"`
	Kind       string    `json:"kind"`
	Metadata   metadata  `json:"metadata"`
	Spec       claimSpec `json:"spec"`
}

type metadata struct {
	Name string `json:"name"`
}

type claimSpec struct {
	AccessModes []string       `json:"accessModes"`
	Resources   claimResources `json:"resources"`
}

type claimResources struct {
	Requests map[string]string `json:"requests"`
}
