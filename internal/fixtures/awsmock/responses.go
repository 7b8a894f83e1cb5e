// Package awsmock provides recorded EC2 API responses and HTTP test doubles
// that replay them, for exercising retry handling around AWS calls.
package awsmock

import (
	"encoding/xml"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// AWS error codes that signal the caller should back off and retry.
const (
	CodeRequestLimitExceeded = "RequestLimitExceeded"
	CodeThrottling           = "Throttling"
)

// Response is a canned HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       string
}

const describeVpcsBody = `<?xml version="1.0" encoding="UTF-8"?>
<DescribeVpcsResponse xmlns="http://ec2.amazonaws.com/doc/2015-10-01/">
    <requestId>5b9f8b96-4e09-4651-a578-0dbca7d79946</requestId>
    <vpcSet>
        <item>
            <vpcId>vpc-47807c22</vpcId>
            <state>available</state>
            <cidrBlock>172.31.0.0/16</cidrBlock>
            <dhcpOptionsId>dopt-3c4e535e</dhcpOptionsId>
            <instanceTenancy>default</instanceTenancy>
            <isDefault>true</isDefault>
        </item>
    </vpcSet>
</DescribeVpcsResponse>`

const rateLimitBody = `<?xml version="1.0" encoding="UTF-8"?>
<Response><Errors><Error><Code>RequestLimitExceeded</Code><Message>Request limit exceeded.</Message></Error></Errors><RequestID>44c0f570-e338-48dd-9953-6684fa586dcb</RequestID></Response>`

const throttlingBody = `<?xml version="1.0" encoding="UTF-8"?>
<Response><Errors><Error><Type>Sender</Type><Code>Throttling</Code><Message>Rate exceeded</Message></Error></Errors><RequestID>44c0f570-e338-48dd-9953-6684fa586dcb</RequestID></Response>`

// DescribeVpcsOK is a successful EC2 DescribeVpcs response.
func DescribeVpcsOK() Response {
	return Response{
		StatusCode: http.StatusOK,
		Header: header(map[string]string{
			"Transfer-Encoding": "chunked",
			"Vary":              "Accept-Encoding",
			"Server":            "AmazonEC2",
			"Content-Type":      "text/xml;charset=UTF-8",
			"Date":              "Sat, 21 May 2016 02:22:53 GMT",
		}),
		Body: describeVpcsBody,
	}
}

// DescribeVpcsRateLimit is a DescribeVpcs call rejected with RequestLimitExceeded.
func DescribeVpcsRateLimit() Response {
	return Response{
		StatusCode: http.StatusBadRequest,
		Header:     errorHeader(),
		Body:       rateLimitBody,
	}
}

// DescribeVpcsThrottling is a DescribeVpcs call rejected with Throttling.
func DescribeVpcsThrottling() Response {
	return Response{
		StatusCode: http.StatusBadRequest,
		Header:     errorHeader(),
		Body:       throttlingBody,
	}
}

// Named returns a recorded response by its script name: "ok", "rate-limit"
// or "throttling".
func Named(name string) (Response, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ok", "describe-vpcs":
		return DescribeVpcsOK(), true
	case "rate-limit", "request-limit-exceeded":
		return DescribeVpcsRateLimit(), true
	case "throttling", "throttle":
		return DescribeVpcsThrottling(), true
	default:
		return Response{}, false
	}
}

func errorHeader() http.Header {
	return header(map[string]string{
		"Transfer-Encoding": "chunked",
		"Date":              "Sat, 21 May 2016 11:08:53 GMT",
		"Server":            "AmazonEC2",
	})
}

func header(values map[string]string) http.Header {
	h := make(http.Header, len(values))
	for key, value := range values {
		h.Set(key, value)
	}
	return h
}

// HTTPResponse materializes r as an *http.Response answering req.
func (r Response) HTTPResponse(req *http.Request) *http.Response {
	return &http.Response{
		Status:        strconv.Itoa(r.StatusCode) + " " + http.StatusText(r.StatusCode),
		StatusCode:    r.StatusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        r.Header.Clone(),
		Body:          io.NopCloser(strings.NewReader(r.Body)),
		ContentLength: int64(len(r.Body)),
		Request:       req,
	}
}

type errorDocument struct {
	Errors []struct {
		Type    string `xml:"Type"`
		Code    string `xml:"Code"`
		Message string `xml:"Message"`
	} `xml:"Errors>Error"`
	RequestID string `xml:"RequestID"`
}

// ErrorCode returns the first AWS error code in the body, or "" for
// successful or unparseable responses.
func (r Response) ErrorCode() string {
	code, _ := r.errorDetail()
	return code
}

// ErrorMessage returns the first AWS error message in the body.
func (r Response) ErrorMessage() string {
	_, message := r.errorDetail()
	return message
}

// IsThrottle reports whether the response asks the caller to back off.
func (r Response) IsThrottle() bool {
	switch r.ErrorCode() {
	case CodeRequestLimitExceeded, CodeThrottling:
		return true
	default:
		return false
	}
}

func (r Response) errorDetail() (string, string) {
	if r.StatusCode < http.StatusBadRequest {
		return "", ""
	}
	var doc errorDocument
	if err := xml.Unmarshal([]byte(r.Body), &doc); err != nil || len(doc.Errors) == 0 {
		return "", ""
	}
	return doc.Errors[0].Code, doc.Errors[0].Message
}
