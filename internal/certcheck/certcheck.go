// Package certcheck inspects a device certificate in the AWS IoT
// registry: its status, the policies attached to it and the things it
// is bound to.
package certcheck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iot"
	"github.com/aws/aws-sdk-go-v2/service/iot/types"
)

var (
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrDescribe            = errors.New("error describing certificate")
	ErrListPolicies        = errors.New("error listing attached policies")
	ErrListThings          = errors.New("error listing principal things")
)

// API is the subset of the IoT client used by Check.
type API interface {
	DescribeCertificate(ctx context.Context, params *iot.DescribeCertificateInput, optFns ...func(*iot.Options)) (*iot.DescribeCertificateOutput, error)
	ListAttachedPolicies(ctx context.Context, params *iot.ListAttachedPoliciesInput, optFns ...func(*iot.Options)) (*iot.ListAttachedPoliciesOutput, error)
	ListPrincipalThings(ctx context.Context, params *iot.ListPrincipalThingsInput, optFns ...func(*iot.Options)) (*iot.ListPrincipalThingsOutput, error)
}

type Report struct {
	CertificateID string
	ARN           string
	Status        types.CertificateStatus
	CreatedAt     time.Time
	Policies      []string
	Things        []string
}

// Healthy means a device holding this certificate can connect and act:
// it is active and at least one policy grants it permissions.
func (r Report) Healthy() bool {
	return r.Status == types.CertificateStatusActive && len(r.Policies) > 0
}

// Hints lists the commands that would make an unhealthy certificate usable.
func (r Report) Hints() []string {
	var hints []string
	if r.Status != types.CertificateStatusActive {
		hints = append(hints, fmt.Sprintf("aws iot update-certificate --certificate-id %s --new-status ACTIVE", r.CertificateID))
	}
	if len(r.Policies) == 0 {
		hints = append(hints, fmt.Sprintf("aws iot attach-policy --policy-name <POLICY_NAME> --target %s", r.ARN))
	}
	return hints
}

func (r Report) Print(w io.Writer) {
	fmt.Fprintf(w, "Certificate: %s\n", r.CertificateID)
	fmt.Fprintf(w, "  ARN:     %s\n", r.ARN)
	fmt.Fprintf(w, "  Status:  %s\n", r.Status)
	if !r.CreatedAt.IsZero() {
		fmt.Fprintf(w, "  Created: %s\n", r.CreatedAt.Format(time.RFC3339))
	}

	fmt.Fprintln(w, "Attached policies:")
	if len(r.Policies) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, p := range r.Policies {
		fmt.Fprintf(w, "  - %s\n", p)
	}

	fmt.Fprintln(w, "Attached things:")
	if len(r.Things) == 0 {
		fmt.Fprintln(w, "  none (optional)")
	}
	for _, t := range r.Things {
		fmt.Fprintf(w, "  - %s\n", t)
	}

	if r.Healthy() {
		fmt.Fprintln(w, "Result: certificate is configured correctly")
		return
	}
	fmt.Fprintln(w, "Result: certificate needs configuration")
	for _, h := range r.Hints() {
		fmt.Fprintf(w, "  $ %s\n", h)
	}
}

func Check(ctx context.Context, api API, certID string) (Report, error) {
	const fn = "Certcheck:Check"
	out, err := api.DescribeCertificate(ctx, &iot.DescribeCertificateInput{
		CertificateId: aws.String(certID),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return Report{}, fmt.Errorf("%s:%w: %s", fn, ErrCertificateNotFound, certID)
		}
		return Report{}, fmt.Errorf("%s:%w:%w", fn, ErrDescribe, err)
	}

	report := Report{CertificateID: certID}
	if desc := out.CertificateDescription; desc != nil {
		report.ARN = aws.ToString(desc.CertificateArn)
		report.Status = desc.Status
		report.CreatedAt = aws.ToTime(desc.CreationDate)
	}

	report.Policies, err = attachedPolicies(ctx, api, report.ARN)
	if err != nil {
		return report, fmt.Errorf("%s:%w:%w", fn, ErrListPolicies, err)
	}
	report.Things, err = principalThings(ctx, api, report.ARN)
	if err != nil {
		return report, fmt.Errorf("%s:%w:%w", fn, ErrListThings, err)
	}
	return report, nil
}

func attachedPolicies(ctx context.Context, api API, arn string) ([]string, error) {
	var names []string
	pages := iot.NewListAttachedPoliciesPaginator(api, &iot.ListAttachedPoliciesInput{
		Target: aws.String(arn),
	})
	for pages.HasMorePages() {
		out, err := pages.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range out.Policies {
			names = append(names, aws.ToString(p.PolicyName))
		}
	}
	return names, nil
}

func principalThings(ctx context.Context, api API, arn string) ([]string, error) {
	var things []string
	pages := iot.NewListPrincipalThingsPaginator(api, &iot.ListPrincipalThingsInput{
		Principal: aws.String(arn),
	})
	for pages.HasMorePages() {
		out, err := pages.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		things = append(things, out.Things...)
	}
	return things, nil
}
