package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"opshelpers/internal/policy"
)

// IAM keeps at most five versions of a managed policy
const maxPolicyVersions = 5

// ApplyResult describes the outcome of EnsureBucketPolicy
type ApplyResult struct {
	PolicyARN string `json:"policy_arn"`
	Created   bool   `json:"created"`
	Updated   bool   `json:"updated"`
}

// Changed reports whether IAM was modified
func (r *ApplyResult) Changed() bool {
	return r.Created || r.Updated
}

// EnsureBucketPolicy makes sure a customer managed policy called name carries doc
// as its default version. Nothing is written when the stored statements already match.
func (c *Client) EnsureBucketPolicy(ctx context.Context, name string, doc policy.Document, logger log.FieldLogger) (*ApplyResult, error) {
	logger = logger.WithField("iam-policy-name", name)

	desired := doc.WithVersion(policy.DocumentVersion)
	body, err := json.Marshal(desired)
	if err != nil {
		return nil, errors.Wrap(err, "unable to marshal IAM policy")
	}

	existing, err := c.findLocalPolicy(ctx, name)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		createResult, err := c.IAMClient.CreatePolicy(ctx, &iam.CreatePolicyInput{
			PolicyName:     awssdk.String(name),
			PolicyDocument: awssdk.String(string(body)),
			Description:    awssdk.String(fmt.Sprintf("Access restricted to bucket resources %s", joinResources(doc))),
		})
		if err != nil {
			return nil, errors.Wrap(err, "unable to create IAM policy")
		}

		logger.Info("AWS IAM policy created")

		return &ApplyResult{
			PolicyARN: awssdk.ToString(createResult.Policy.Arn),
			Created:   true,
		}, nil
	}

	policyARN := awssdk.ToString(existing.Arn)
	versionResult, err := c.IAMClient.GetPolicyVersion(ctx, &iam.GetPolicyVersionInput{
		PolicyArn: existing.Arn,
		VersionId: existing.DefaultVersionId,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to get default version of IAM policy %s", policyARN)
	}

	current, err := policy.ParseDocument(awssdk.ToString(versionResult.PolicyVersion.Document))
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse stored IAM policy %s", policyARN)
	}

	if reflect.DeepEqual(current.Statement, desired.Statement) {
		logger.Debug("AWS IAM policy already up to date")
		return &ApplyResult{PolicyARN: policyARN}, nil
	}

	if err := c.pruneOldestPolicyVersion(ctx, existing.Arn, logger); err != nil {
		return nil, err
	}

	_, err = c.IAMClient.CreatePolicyVersion(ctx, &iam.CreatePolicyVersionInput{
		PolicyArn:      existing.Arn,
		PolicyDocument: awssdk.String(string(body)),
		SetAsDefault:   true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to create new version of IAM policy %s", policyARN)
	}

	logger.Info("AWS IAM policy updated")

	return &ApplyResult{
		PolicyARN: policyARN,
		Updated:   true,
	}, nil
}

func (c *Client) findLocalPolicy(ctx context.Context, name string) (*types.Policy, error) {
	paginator := iam.NewListPoliciesPaginator(c.IAMClient, &iam.ListPoliciesInput{
		Scope: types.PolicyScopeTypeLocal,
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "unable to list IAM policies")
		}

		for i := range page.Policies {
			if awssdk.ToString(page.Policies[i].PolicyName) == name {
				return &page.Policies[i], nil
			}
		}
	}

	return nil, nil
}

// pruneOldestPolicyVersion frees a version slot when the policy is at the IAM limit
func (c *Client) pruneOldestPolicyVersion(ctx context.Context, policyARN *string, logger log.FieldLogger) error {
	versions, err := c.IAMClient.ListPolicyVersions(ctx, &iam.ListPolicyVersionsInput{
		PolicyArn: policyARN,
	})
	if err != nil {
		return errors.Wrapf(err, "unable to list versions of IAM policy %s", awssdk.ToString(policyARN))
	}

	if len(versions.Versions) < maxPolicyVersions {
		return nil
	}

	var oldest *types.PolicyVersion
	for i := range versions.Versions {
		version := &versions.Versions[i]
		if version.IsDefaultVersion {
			continue
		}
		if oldest == nil || awssdk.ToTime(version.CreateDate).Before(awssdk.ToTime(oldest.CreateDate)) {
			oldest = version
		}
	}

	if oldest == nil {
		return nil
	}

	_, err = c.IAMClient.DeletePolicyVersion(ctx, &iam.DeletePolicyVersionInput{
		PolicyArn: policyARN,
		VersionId: oldest.VersionId,
	})
	if err != nil {
		return errors.Wrapf(err, "unable to delete version %s of IAM policy %s", awssdk.ToString(oldest.VersionId), awssdk.ToString(policyARN))
	}

	logger.WithField("iam-policy-version", awssdk.ToString(oldest.VersionId)).Debug("AWS IAM policy version deleted")

	return nil
}

func joinResources(doc policy.Document) string {
	var resources []string
	for _, stmt := range doc.Statement {
		if stmt.Effect == policy.EffectAllow {
			resources = append(resources, stmt.Resources()...)
		}
	}
	return fmt.Sprint(resources)
}
